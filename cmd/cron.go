package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stockorder.GO/config"
	"stockorder.GO/core/migrate"
	"stockorder.GO/cron"
	inventoryService "stockorder.GO/service/inventory"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	RunE: func(c *cobra.Command, args []string) error {
		cfg, db, err := bootstrap(migrate.Inventory)
		if err != nil {
			return err
		}
		svc := inventoryService.NewService(db)
		if err := cron.Register(config.JobLowStockReport, config.CronSchedule(config.JobLowStockReport), svc.LowStockJob(cfg.LowStockThreshold)); err != nil {
			return err
		}

		if jobName != "" {
			name := strings.ToLower(jobName)
			j, ok := cron.Jobs()[name]
			if !ok {
				return fmt.Errorf("unknown job: %s", jobName)
			}
			fmt.Fprintf(c.OutOrStdout(), "Running cron job: %s\n", name)
			j.Run(args...)
			return nil
		}

		sched, err := cron.StartCron()
		if err != nil {
			return err
		}
		defer sched.Stop()
		fmt.Fprintln(c.OutOrStdout(), "Cron scheduler started. Press Ctrl+C to exit.")
		ctx, stop := SignalContext(c.Context())
		defer stop()
		<-ctx.Done()
		return nil
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
