package cron

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"stockorder.GO/core/registry"
)

// Job is a named background task run on a cron schedule.
type Job struct {
	Name     string
	Schedule string
	Run      func(...string)
}

var mu sync.Mutex

// Register adds a job to be scheduled by StartCron. The schedule is parsed up front
// (standard five fields or descriptors such as "@every 1m"). Panics once StartCron
// has locked the registry.
func Register(name, schedule string, run func(...string)) error {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		panic("cron/registry: locked (register only before StartCron)")
	}
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("cron: job %s: bad schedule %q: %w", name, schedule, err)
	}
	jobs := getJobs()
	if _, ok := jobs[name]; ok {
		return fmt.Errorf("cron: job %s already registered", name)
	}
	jobs[name] = Job{Name: name, Schedule: schedule, Run: run}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
	return nil
}

// Unregister removes a job (for tests).
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	jobs := getJobs()
	delete(jobs, name)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

func getJobs() map[string]Job {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCron); ok && v != nil {
		return v.(map[string]Job)
	}
	return make(map[string]Job)
}

// Jobs returns a copy of the registered jobs and locks the cron registry.
func Jobs() map[string]Job {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Job)
	for k, v := range getJobs() {
		out[k] = v
	}
	if !registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryCron)
	}
	return out
}
