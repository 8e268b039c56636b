package scenario

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/arplane"
	"github.com/gogpu/arplane/plane"
)

const tableTop = `
name = "table top"
session = [3]
palette = ["#ff0000", "#00ff00"]

[[plane]]
id = 7
appear = 1

  [[plane.frame]]
  state = "tracking"
  hold = 2
  center = [0.0, 0.0, -1.0]
  boundary = [[-0.5, 0.0, -1.5], [0.5, 0.0, -1.5], [0.5, 0.0, -0.5], [-0.5, 0.0, -0.5]]

  [[plane.frame]]
  state = "not-tracking"

  [[plane.frame]]
  state = "tracking"
  hold = 2
  center = [0.0, 0.0, -1.0]
  rotation = [0.0, 0.0, 0.0, 1.0]
  boundary = [[-0.6, 0.0, -1.6], [0.6, 0.0, -1.6], [0.6, 0.0, -0.4], [-0.6, 0.0, -0.4]]

  [[plane.frame]]
  state = "subsumed"
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(tableTop))
	require.NoError(t, err)

	assert.Equal(t, "table top", s.Name)
	assert.Equal(t, []int{3}, s.Session)
	require.Len(t, s.Planes, 1)

	tr := s.Planes[0]
	assert.Equal(t, uint64(7), tr.ID)
	assert.Equal(t, 1, tr.Appear)
	require.Len(t, tr.Frames, 4)
	assert.Equal(t, plane.Tracking, tr.Frames[0].State)
	assert.Equal(t, plane.NotTracking, tr.Frames[1].State)
	assert.Equal(t, plane.Subsumed, tr.Frames[3].State)
	assert.Equal(t, arplane.V3(-0.5, 0, -1.5), tr.Frames[0].Points()[0])

	// 2 + 1 + 2 frames before the last keyframe begins, then one more.
	assert.Equal(t, 6, tr.Length())
	assert.Equal(t, 7, s.Len())

	p := s.GridPalette()
	require.NotNil(t, p)
	assert.Equal(t, arplane.RGB(1, 0, 0), p.Next())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name: "unknown field",
			doc:  "name = \"x\"\ncolour = 1\n",
		},
		{
			name: "unknown state",
			doc:  "[[plane]]\nid = 1\n[[plane.frame]]\nstate = \"paused\"\n",
		},
		{
			name:    "short tracking boundary",
			doc:     "[[plane]]\nid = 1\n[[plane.frame]]\nstate = \"tracking\"\nboundary = [[0.0, 0.0, 0.0], [1.0, 0.0, 0.0]]\n",
			wantErr: arplane.ErrDegenerateBoundary,
		},
		{
			name:    "duplicate id",
			doc:     "[[plane]]\nid = 1\n[[plane.frame]]\nstate = \"subsumed\"\n[[plane]]\nid = 1\n[[plane.frame]]\nstate = \"subsumed\"\n",
			wantErr: ErrDuplicatePlane,
		},
		{
			name:    "no frames",
			doc:     "[[plane]]\nid = 1\n",
			wantErr: ErrNoFrames,
		},
		{
			name:    "frame after subsumed",
			doc:     "[[plane]]\nid = 1\n[[plane.frame]]\nstate = \"subsumed\"\n[[plane.frame]]\nstate = \"not-tracking\"\n",
			wantErr: ErrAfterSubsumed,
		},
		{
			name:    "negative appear",
			doc:     "[[plane]]\nid = 1\nappear = -2\n[[plane.frame]]\nstate = \"subsumed\"\n",
			wantErr: ErrNegative,
		},
		{
			name: "bad palette",
			doc:  "palette = [\"nope\"]\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestEncodeParse(t *testing.T) {
	want := Synthetic(SyntheticOptions{Planes: 3, Frames: 40, Seed: 5})
	data, err := want.Encode()
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	want, err := Parse([]byte(tableTop))
	require.NoError(t, err)

	require.NoError(t, want.Save(path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestKeyframePoseDefaultsToIdentity(t *testing.T) {
	k := Keyframe{Center: [3]float32{1, 2, 3}}
	p := k.Pose()
	assert.Equal(t, arplane.QuatIdent, p.Rotation)
	assert.Equal(t, arplane.V3(1, 2, 3), p.Position)
	assert.Equal(t, arplane.Up, p.Up())
}
