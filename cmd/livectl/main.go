// Command livectl is the blaze-live operations CLI.
//
// Usage:
//
//	livectl games add --sport MLB --id 746789 --home "Astros" --away "Rangers"
//	livectl games list
//	livectl games deactivate 6f1c...
//	livectl games reset 6f1c...
//	livectl events list --limit 20
//	livectl reconstruct event 9b2d...
//	livectl reconstruct ball --exit-velocity 108 --launch-angle 28 --spin 1900
//	livectl reconstruct pitch --velocity 98.5 --spin 2450 --axis 205
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/ahump20/blaze-live/internal/cache"
	"github.com/ahump20/blaze-live/internal/config"
	"github.com/ahump20/blaze-live/internal/db"
	"github.com/ahump20/blaze-live/internal/model"
	"github.com/ahump20/blaze-live/internal/physics"
	"github.com/ahump20/blaze-live/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "livectl",
		Short: "blaze-live operations CLI",
	}

	root.AddCommand(gamesCmd())
	root.AddCommand(eventsCmd())
	root.AddCommand(reconstructCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// runWithDB loads config, opens the pool, and runs fn with a timeout.
func runWithDB(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}

// --------------------------------------------------------------------------
// games commands
// --------------------------------------------------------------------------

func gamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Manage the monitored game registry",
	}
	cmd.AddCommand(gamesAddCmd())
	cmd.AddCommand(gamesListCmd())
	cmd.AddCommand(gamesDeactivateCmd())
	cmd.AddCommand(gamesResetCmd())
	return cmd
}

func gamesAddCmd() *cobra.Command {
	var sport, externalID, home, away string
	var interval int
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a game for monitoring",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				game := &model.MonitoredGame{
					Sport:        model.Sport(sport),
					ExternalID:   externalID,
					HomeTeam:     home,
					AwayTeam:     away,
					PollInterval: interval,
				}
				if err := store.NewGames(pool.Pool).Register(ctx, game); err != nil {
					return err
				}
				logger.Info("Game registered", "id", game.ID, "sport", sport, "external_id", externalID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&sport, "sport", "", "Sport tag (MLB, NFL, NBA)")
	cmd.Flags().StringVar(&externalID, "id", "", "External game id")
	cmd.Flags().StringVar(&home, "home", "", "Home team name")
	cmd.Flags().StringVar(&away, "away", "", "Away team name")
	cmd.Flags().IntVar(&interval, "interval", 15, "Poll interval in seconds")
	_ = cmd.MarkFlagRequired("sport")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func gamesListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered games",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				games, err := store.NewGames(pool.Pool).List(ctx, limit)
				if err != nil {
					return err
				}
				for _, g := range games {
					fmt.Printf("%s  %-4s %-10s %s @ %s  active=%v status=%s\n",
						g.ID, g.Sport, g.ExternalID, g.AwayTeam, g.HomeTeam, g.Active, g.State.Status)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Max rows")
	return cmd
}

func gamesDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <game-id>",
		Short: "Stop monitoring a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid game id: %w", err)
			}
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if err := store.NewGames(pool.Pool).Deactivate(ctx, id); err != nil {
					return err
				}
				logger.Info("Game deactivated", "id", id)
				return nil
			})
		},
	}
}

func gamesResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <game-id>",
		Short: "Clear a game's processed-play set so its plays are rescored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid game id: %w", err)
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			opts, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("invalid REDIS_URL: %w", err)
			}
			client := redis.NewClient(opts)
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := cache.NewProcessed(client, cfg.ProcessedTTL).Clear(ctx, id); err != nil {
				return err
			}
			logger.Info("Processed set cleared", "id", id)
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// events commands
// --------------------------------------------------------------------------

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect detected events",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recently detected events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				events, err := store.NewEvents(pool.Pool).List(ctx, limit)
				if err != nil {
					return err
				}
				for _, ev := range events {
					fmt.Printf("%s  %-4s %-22s score=%-3d leverage=%.2f wp=%+.3f  %s\n",
						ev.ID, ev.Sport, ev.EventType, ev.Significance,
						ev.Leverage, ev.WinProbDelta, ev.GameClock)
				}
				return nil
			})
		},
	}
	list.Flags().IntVar(&limit, "limit", 50, "Max rows")
	cmd.AddCommand(list)
	return cmd
}

// --------------------------------------------------------------------------
// reconstruct commands
// --------------------------------------------------------------------------

func reconstructCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconstruct",
		Short: "Run a physics reconstruction",
	}
	cmd.AddCommand(reconstructEventCmd())
	cmd.AddCommand(reconstructBallCmd())
	cmd.AddCommand(reconstructPitchCmd())
	return cmd
}

func reconstructEventCmd() *cobra.Command {
	var elevation float64
	cmd := &cobra.Command{
		Use:   "event <event-id>",
		Short: "Reconstruct flight from a persisted event's launch parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid event id: %w", err)
			}
			return runWithDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				events := store.NewEvents(pool.Pool)
				ev, err := events.Get(ctx, id)
				if err != nil {
					return err
				}
				if ev.Launch == nil {
					return fmt.Errorf("event %s carries no launch parameters", id)
				}

				params := physics.DefaultParams()
				params.Elevation = elevation
				tr, err := physics.FromLaunchParameters(*ev.Launch, params)
				if err != nil {
					return err
				}
				printTrajectory(tr, params)
				return events.MarkReconstructed(ctx, id)
			})
		},
	}
	cmd.Flags().Float64Var(&elevation, "elevation", 0, "Stadium elevation in feet")
	return cmd
}

func reconstructBallCmd() *cobra.Command {
	var ev, angle, spray, spin, axis, elevation, temp, windSpeed, windDir float64
	cmd := &cobra.Command{
		Use:   "ball",
		Short: "Reconstruct an ad-hoc batted ball",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := physics.DefaultParams()
			params.Elevation = elevation
			params.Temperature = temp
			params.Wind = physics.Wind{Speed: windSpeed, Direction: windDir}
			tr := physics.ReconstructBattedBall(physics.BattedBall{
				ExitVelocity: ev,
				LaunchAngle:  angle,
				SprayAngle:   spray,
				SpinRate:     spin,
				SpinAxis:     axis,
			}, params)
			printTrajectory(tr, params)
			return nil
		},
	}
	cmd.Flags().Float64Var(&ev, "exit-velocity", 100, "Exit velocity (mph)")
	cmd.Flags().Float64Var(&angle, "launch-angle", 25, "Launch angle (deg)")
	cmd.Flags().Float64Var(&spray, "spray-angle", 0, "Spray angle (deg)")
	cmd.Flags().Float64Var(&spin, "spin", 0, "Spin rate (rpm)")
	cmd.Flags().Float64Var(&axis, "axis", 0, "Spin axis (deg, 0 = backspin)")
	cmd.Flags().Float64Var(&elevation, "elevation", 0, "Stadium elevation (ft)")
	cmd.Flags().Float64Var(&temp, "temperature", 70, "Temperature (F)")
	cmd.Flags().Float64Var(&windSpeed, "wind", 0, "Wind speed (mph)")
	cmd.Flags().Float64Var(&windDir, "wind-direction", 0, "Wind direction (deg, 0 = out to center)")
	return cmd
}

func reconstructPitchCmd() *cobra.Command {
	var velo, spin, axis float64
	cmd := &cobra.Command{
		Use:   "pitch",
		Short: "Reconstruct an ad-hoc pitch",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := physics.DefaultParams()
			tr := physics.ReconstructPitch(physics.Pitch{
				Velocity: velo,
				SpinRate: spin,
				SpinAxis: axis,
			}, params)
			printTrajectory(tr, params)
			return nil
		},
	}
	cmd.Flags().Float64Var(&velo, "velocity", 95, "Release velocity (mph)")
	cmd.Flags().Float64Var(&spin, "spin", 2300, "Spin rate (rpm)")
	cmd.Flags().Float64Var(&axis, "axis", 0, "Spin axis (deg, 0 = backspin)")
	return cmd
}

func printTrajectory(tr *physics.Trajectory, params physics.Params) {
	fmt.Printf("samples:     %d\n", len(tr.Samples))
	fmt.Printf("hang time:   %.2fs\n", tr.HangTime)
	fmt.Printf("peak height: %.1fft\n", tr.PeakHeight)
	fmt.Printf("distance:    %.1fft\n", tr.Distance)
	if tr.Landing == nil {
		fmt.Println("landing:     none (time ceiling reached)")
		return
	}
	fmt.Printf("landing:     x=%.1f y=%.1f\n", tr.Landing.X, tr.Landing.Y)

	if fence, err := physics.FenceClearance(tr, params); err == nil {
		fmt.Printf("fence:       clears=%v margin=%.1fft (wall %0.fft @ %.0fft)\n",
			fence.Clears, fence.Margin, fence.Segment.Height, fence.Segment.Distance)
	}
}
