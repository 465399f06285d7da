package main

// @title           SEA Catering API
// @version         1.0
// @description     Meal subscription backend: plan catalog and pricing, customer subscriptions, testimonials and the admin dashboard.

// @contact.name   SEA Catering Support
// @contact.email  support@seacatering.example

// @host      localhost:8888
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

import (
	"context"
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/natashawa225/sea-catering/internal/app"
	"github.com/natashawa225/sea-catering/internal/app/service/role"
	"github.com/natashawa225/sea-catering/pkg/types"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sea-catering",
		Short:         "SEA Catering backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return serve() },
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newGrantRoleCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background scheduler",
		RunE:  func(cmd *cobra.Command, _ []string) error { return serve() },
	}
}

func serve() error {
	a := fx.New(app.Module)
	startCtx, cancel := context.WithTimeout(context.Background(), app.DefaultStartTimeout)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		// logging might not be ready yet
		zap.NewExample().Sugar().Errorf("failed to start app: %v", err)
		return err
	}

	// blocks until SIGINT/SIGTERM or a shutdown request
	sig := <-a.Wait()

	stopCtx, cancel2 := context.WithTimeout(context.Background(), app.DefaultStopTimeout)
	defer cancel2()
	if err := a.Stop(stopCtx); err != nil {
		zap.NewExample().Sugar().Errorf("failed to stop app: %v", err)
		return err
	}
	if sig.ExitCode != 0 {
		return fmt.Errorf("exited with code %d", sig.ExitCode)
	}
	return nil
}

// runOnce starts opts, hands control to fn and stops again.
func runOnce(ctx context.Context, fn func(context.Context) error, opts ...fx.Option) error {
	a := fx.New(append(opts, fx.NopLogger)...)
	if err := a.Err(); err != nil {
		return err
	}
	startCtx, cancel := context.WithTimeout(ctx, app.DefaultStartTimeout)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		return err
	}
	runErr := fn(ctx)

	stopCtx, cancel2 := context.WithTimeout(context.Background(), app.DefaultStopTimeout)
	defer cancel2()
	if err := a.Stop(stopCtx); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// db.Module migrates while the graph is built
			return runOnce(cmd.Context(), func(context.Context) error {
				cmd.Println("schema is up to date")
				return nil
			}, app.Infra)
		},
	}
}

func newGrantRoleCmd() *cobra.Command {
	var userID, roleName string
	cmd := &cobra.Command{
		Use:     "grant-role",
		Short:   "Assign a role to a user",
		Example: "  sea-catering grant-role --user 3f1c... --role admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := types.Role(roleName)
			if !r.Valid() {
				return fmt.Errorf("unknown role %q, want %q or %q", roleName, types.RoleCustomer, types.RoleAdmin)
			}
			var roles *role.Service
			return runOnce(cmd.Context(), func(ctx context.Context) error {
				if err := roles.Grant(ctx, userID, r); err != nil {
					return err
				}
				cmd.Printf("granted %s to %s\n", r, userID)
				return nil
			}, app.Infra, role.Module, fx.Populate(&roles))
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (the token subject)")
	cmd.Flags().StringVar(&roleName, "role", string(types.RoleAdmin), "role to grant: customer or admin")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
