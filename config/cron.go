package config

import "strings"

// Cron job names and their default schedules. CRON_<NAME> env vars override them,
// with ':' in the name replaced by '_' (e.g. CRON_INVENTORY_LOWSTOCK).
const (
	JobIdempotencyPurge = "idempotency:purge"
	JobLowStockReport   = "inventory:lowstock"
)

var cronDefaults = map[string]string{
	JobIdempotencyPurge: "@every 1m",
	JobLowStockReport:   "@hourly",
}

// CronSchedule returns the schedule for a job name, or "" for unknown jobs.
func CronSchedule(name string) string {
	def, ok := cronDefaults[name]
	if !ok {
		return ""
	}
	key := "CRON_" + strings.ToUpper(strings.ReplaceAll(name, ":", "_"))
	return GetEnv(key, def)
}
