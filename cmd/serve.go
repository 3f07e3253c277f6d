package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seededlabs/seedpool/config"
	"github.com/seededlabs/seedpool/jsonrpc"
	"github.com/seededlabs/seedpool/logx"
	"github.com/seededlabs/seedpool/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the staking pool JSON-RPC node",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServer(); err != nil {
			logx.Error("NODE", "Failed to start:", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer() error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.close()

	rpcCfg, err := config.LoadRPCConfig(nodeConfigPath)
	if err != nil {
		return err
	}

	stakingSvc := service.NewStakingService(app.engine)
	healthSvc := service.NewHealthService(app.engine, app.stakes, app.bus)

	server := jsonrpc.NewServer(rpcCfg.ListenAddr, stakingSvc, healthSvc)
	if corsCfg, ok := jsonrpc.CORSFromEnv(); ok {
		server.SetCORSConfig(corsCfg)
	}
	server.Start()

	logx.Info("NODE", fmt.Sprintf("Pool %s serving at %s, record address %s",
		app.cfg.ProtocolName, rpcCfg.ListenAddr, app.engine.PoolAddress()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logx.Info("NODE", fmt.Sprintf("Received %s, shutting down", sig))
	return nil
}
