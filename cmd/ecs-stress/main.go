package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/smallworld/ecs"
)

// Stress components. Enough distinct types to spread entities over many
// masks and keep several cached views hot at once.
type Transform struct {
	X, Y float32
}

type Kinematics struct {
	DX, DY float32
}

type Lifetime struct {
	Remaining float64
}

type Sprite struct {
	Frame int
}

type Brain struct {
	State int
}

type Loot struct {
	Gold int
}

const componentCount = 6

// movementSystem integrates positions; the steady-state hot path.
type movementSystem struct {
	ecs.BaseSystem
}

func (movementSystem) Update(w *ecs.World, dt float64) {
	ecs.Each2(w, func(e ecs.Entity, tf *Transform, kin *Kinematics) {
		tf.X += kin.DX * float32(dt)
		tf.Y += kin.DY * float32(dt)
	})
}

// lifetimeSystem destroys expired entities and respawns replacements, which
// keeps index recycling and view diff queues under constant pressure.
type lifetimeSystem struct {
	ecs.BaseSystem
	rng *rand.Rand
}

func (s *lifetimeSystem) Update(w *ecs.World, dt float64) {
	var expired []ecs.Entity
	ecs.Each(w, func(e ecs.Entity, lt *Lifetime) {
		lt.Remaining -= dt
		if lt.Remaining <= 0 {
			expired = append(expired, e)
		}
	})
	for _, e := range expired {
		w.DestroyEntity(e)
	}
	for range expired {
		spawnRandomEntity(w, s.rng)
	}
}

// churnSystem randomly toggles components and activity on a few entities per
// cycle so views never settle.
type churnSystem struct {
	ecs.BaseSystem
	rng *rand.Rand
}

func (s *churnSystem) Update(w *ecs.World, dt float64) {
	entities := w.Entities()
	if len(entities) == 0 {
		return
	}
	for i := 0; i < 16; i++ {
		e := entities[s.rng.Intn(len(entities))]
		switch s.rng.Intn(4) {
		case 0:
			ecs.Assign(w, e, Sprite{Frame: s.rng.Intn(8)})
		case 1:
			ecs.Unassign[Sprite](w, e)
		case 2:
			w.SetActive(e, s.rng.Intn(4) != 0)
		case 3:
			ecs.Assign(w, e, Brain{State: s.rng.Intn(3)})
		}
	}
}

const systemCount = 3

func spawnRandomEntity(w *ecs.World, rng *rand.Rand) {
	e := w.NewEntity()
	ecs.Assign(w, e, Transform{X: rng.Float32() * 100, Y: rng.Float32() * 100})
	if rng.Intn(2) == 0 {
		ecs.Assign(w, e, Kinematics{DX: rng.Float32(), DY: rng.Float32()})
	}
	if rng.Intn(2) == 0 {
		ecs.Assign(w, e, Lifetime{Remaining: rng.Float64() * 5})
	}
	if rng.Intn(3) == 0 {
		ecs.Assign(w, e, Sprite{Frame: rng.Intn(8)})
	}
	if rng.Intn(4) == 0 {
		ecs.Assign(w, e, Loot{Gold: rng.Intn(100)})
	}
}

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 4096, "The initial number of entities to create.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	cpuProfile := flag.Bool("cpuprofile", false, "Write a CPU profile to the working directory.")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if *entityCount >= ecs.MaxEntities {
		log.Fatalf("entities must be below the capacity of %d", ecs.MaxEntities)
	}

	log.Println("Starting ECS stress test...")

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	w := ecs.NewWorld()
	w.AddSystem(movementSystem{})
	w.AddSystem(&lifetimeSystem{rng: rng})
	w.AddSystem(&churnSystem{rng: rng})

	log.Printf("Populating world with %d entities...\n", *entityCount)
	for i := 0; i < *entityCount; i++ {
		spawnRandomEntity(w, rng)
	}
	log.Println("Population complete.")

	// Prime the views the systems use so the steady state is diff
	// application, not rescans.
	ecs.View2[Transform, Kinematics](w)
	ecs.View[Lifetime](w)

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     componentCount,
		Systems:        systemCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			w.Update(float64(deltaTime) / float64(time.Second))
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.WorldStats = w.CollectStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
