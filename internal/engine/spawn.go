package engine

import (
	"math/rand"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/config"
)

// spawner owns the obstacle and power-up timers and id counters of a run.
type spawner struct {
	rng *rand.Rand
	cfg *config.Tuning

	obstacleTimer float64 // Seconds until the next obstacle spawn attempt
	powerUpTimer  float64 // Seconds until the next power-up
	nextObstacle  int
	nextPowerUp   int
}

func newSpawner(seed int64, cfg *config.Tuning) *spawner {
	return &spawner{
		rng: rand.New(rand.NewSource(seed)),
		cfg: cfg,
	}
}

// reset prepares the spawner for a new run with the given obstacle cooldown.
func (s *spawner) reset(cooldown float64) {
	s.obstacleTimer = cooldown
	s.powerUpTimer = s.cfg.PowerUps.IntervalSeconds
	s.nextObstacle = 1
	s.nextPowerUp = 1
}

// rescale preserves the fraction of the cooldown already elapsed when the
// cooldown length changes.
func (s *spawner) rescale(oldCooldown, newCooldown float64) {
	ratio := 1.0
	if oldCooldown > 0 {
		ratio = s.obstacleTimer / oldCooldown
	}
	lo := min(s.cfg.Spawn.MinRescaledTimer, newCooldown)
	s.obstacleTimer = max(lo, min(ratio*newCooldown, newCooldown))
}

// spawnObstacles runs the obstacle timer and returns obstacles with any new
// spawns appended. Lanes holding an obstacle above threshold are skipped.
// The timer keeps running while spawning is not allowed.
func (s *spawner) spawnObstacles(obstacles []Obstacle, dt float64, allowed bool, cooldown, threshold float64, pool []catalog.Variant) ([]Obstacle, int) {
	s.obstacleTimer -= dt
	spawned := 0
	if !allowed {
		return obstacles, 0
	}

	for pass := 0; s.obstacleTimer <= 0 && pass < s.cfg.Spawn.MaxPassesPerTick; pass++ {
		lanes := freeLanes(obstacles, threshold)
		if len(lanes) == 0 {
			s.obstacleTimer = max(s.obstacleTimer+s.cfg.Spawn.BackoffSeconds, s.cfg.Spawn.MinBackoffSeconds)
			break
		}

		obstacles = append(obstacles, Obstacle{
			ID:      s.nextObstacle,
			Lane:    lanes[s.rng.Intn(len(lanes))],
			Y:       s.cfg.Spawn.StartY,
			Variant: s.pickVariant(pool),
		})
		s.nextObstacle++
		spawned++
		s.obstacleTimer += cooldown
	}

	return obstacles, spawned
}

// spawnPowerUp runs the power-up timer. A shield is only offered while the
// player has none.
func (s *spawner) spawnPowerUp(powerUps []PowerUp, dt float64, allowed bool) []PowerUp {
	s.powerUpTimer -= dt
	if !allowed || s.powerUpTimer > 0 {
		return powerUps
	}

	powerUps = append(powerUps, PowerUp{
		ID:   s.nextPowerUp,
		Lane: s.rng.Intn(LaneCount),
		Y:    s.cfg.PowerUps.StartY,
		Kind: PowerUpShield,
	})
	s.nextPowerUp++
	s.powerUpTimer = s.cfg.PowerUps.IntervalSeconds + (s.rng.Float64()-0.5)*s.cfg.PowerUps.JitterSeconds
	return powerUps
}

func (s *spawner) pickVariant(pool []catalog.Variant) catalog.Variant {
	if len(pool) == 0 {
		return catalog.VariantCar
	}
	return pool[s.rng.Intn(len(pool))]
}

// freeLanes returns the lanes with no obstacle above the clear threshold.
func freeLanes(obstacles []Obstacle, threshold float64) []int {
	var occupied [LaneCount]bool
	for _, o := range obstacles {
		if o.Y < threshold {
			occupied[o.Lane] = true
		}
	}

	lanes := make([]int, 0, LaneCount)
	for lane, busy := range occupied {
		if !busy {
			lanes = append(lanes, lane)
		}
	}
	return lanes
}
