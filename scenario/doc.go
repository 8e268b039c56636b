// Package scenario records and replays plane tracking sessions.
//
// A scenario is a TOML document describing when planes appear and how their
// tracking state, pose and boundary evolve frame by frame:
//
//	name = "table top"
//	session = [12, 13]          # frames where the session lost tracking
//
//	[[plane]]
//	id = 1
//	appear = 0
//
//	  [[plane.frame]]
//	  state = "tracking"
//	  hold = 10                 # frames this keyframe lasts
//	  center = [0.0, 0.0, -1.0]
//	  rotation = [0.0, 0.0, 0.0, 1.0]
//	  boundary = [[-0.5, 0.0, -1.5], [0.5, 0.0, -1.5], [0.5, 0.0, -0.5]]
//
//	  [[plane.frame]]
//	  state = "subsumed"
//
// A keyframe persists until the next one; the last keyframe persists until
// the end of the scenario. A [Replay] turns a scenario into a tracking
// source whose planes implement plane.Plane.
package scenario
