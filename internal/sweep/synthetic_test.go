package sweep

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/argoai/argoverse2-api/internal/frame"
	"github.com/argoai/argoverse2-api/internal/geom"
)

func TestSyntheticSceneShape(t *testing.T) {
	cfg := SceneConfig{NumPoints: 500, NumCuboids: 5}
	lidar, cuboids := SyntheticScene(cfg, rand.NewPCG(1, 2))

	assert.Equal(t, 500, lidar.Frame.NumRows())
	assert.Equal(t, 5, cuboids.Frame.NumRows())
	for _, name := range LidarFields {
		assert.True(t, lidar.Frame.HasColumn(name), "lidar column %s", name)
	}
	for _, name := range CuboidPoseFields {
		assert.True(t, cuboids.Frame.HasColumn(name), "cuboid column %s", name)
	}

	tracks, err := cuboids.TrackUUIDs()
	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, id := range tracks {
		_, err := uuid.Parse(id)
		assert.NoError(t, err, "track id %q is not a uuid", id)
		assert.False(t, seen[id], "duplicate track id %q", id)
		seen[id] = true
	}
}

func TestSyntheticSceneDeterministic(t *testing.T) {
	cfg := SceneConfig{NumPoints: 200, NumCuboids: 3}
	lidarA, cuboidsA := SyntheticScene(cfg, rand.NewPCG(7, 8))
	lidarB, cuboidsB := SyntheticScene(cfg, rand.NewPCG(7, 8))

	assert.True(t, frame.Equal(lidarA.Frame, lidarB.Frame))
	assert.True(t, frame.Equal(cuboidsA.Frame, cuboidsB.Frame))

	lidarC, _ := SyntheticScene(cfg, rand.NewPCG(9, 10))
	assert.False(t, frame.Equal(lidarA.Frame, lidarC.Frame))
}

// Each cuboid must actually contain its seeded interior points,
// otherwise object-level augmentations have nothing to exercise.
func TestSyntheticSceneCuboidsArePopulated(t *testing.T) {
	cfg := SceneConfig{NumPoints: 400, NumCuboids: 4, PointsPerCuboid: 20}
	lidar, cuboids := SyntheticScene(cfg, rand.NewPCG(3, 4))

	points, err := lidar.AsMatrix()
	require.NoError(t, err)
	pose, err := cuboids.AsMatrix()
	require.NoError(t, err)

	mask := geom.ComputeInteriorPointsMask(points, geom.CuboidsToPolygons(pose))
	numCuboids, _ := mask.Dims()
	for i := 0; i < numCuboids; i++ {
		assert.GreaterOrEqual(t, mask.CountRow(i), cfg.PointsPerCuboid,
			"cuboid %d has too few interior points", i)
	}
}

func TestURIString(t *testing.T) {
	u := URI{LogID: "log-abc", TimestampNs: 315969904359876000}
	assert.Equal(t, "log-abc@315969904359876000", u.String())
}
