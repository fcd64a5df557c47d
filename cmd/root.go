package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	adminCmd "github.com/shafe/handcraft/admin/cmd"
	cartCmd "github.com/shafe/handcraft/cart/cmd"
	catalogCmd "github.com/shafe/handcraft/catalog/cmd"
	channelCmd "github.com/shafe/handcraft/channel/cmd"
	"github.com/shafe/handcraft/internal/common"
	"github.com/shafe/handcraft/internal/log"
	orderCmd "github.com/shafe/handcraft/order/cmd"
	userCmd "github.com/shafe/handcraft/user/cmd"
)

func Start() {
	logger := log.InitLogger(fmt.Sprintf("/var/log/%s.log", common.AppMainHandcraft)).
		With().
		Str(log.KeyAppName, common.AppMainHandcraft).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: common.AppMainHandcraft}
	commands := []*cobra.Command{
		{
			Use:   "admin",
			Short: "Run admin service",
			Run: func(cmd *cobra.Command, args []string) {
				adminCmd.RunAdminService(cmd.Context())
			},
		},
		{
			Use:   "cart",
			Short: "Run cart service",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context())
			},
		},
		{
			Use:   "catalog",
			Short: "Run catalog service",
			Run: func(cmd *cobra.Command, args []string) {
				catalogCmd.RunCatalogService(cmd.Context())
			},
		},
		{
			Use:   "channel",
			Short: "Run channel service",
			Run: func(cmd *cobra.Command, args []string) {
				channelCmd.RunChannelService(cmd.Context())
			},
		},
		{
			Use:   "order",
			Short: "Run order service",
			Run: func(cmd *cobra.Command, args []string) {
				orderCmd.RunOrderService(cmd.Context())
			},
		},
		{
			Use:   "user",
			Short: "Run user service",
			Run: func(cmd *cobra.Command, args []string) {
				userCmd.RunUserService(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
