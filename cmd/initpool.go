package cmd

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/seededlabs/seedpool/logx"
)

var initPoolCmd = &cobra.Command{
	Use:   "init-pool",
	Short: "Initialize the pool record and custody account",
	Long: `Creates the singleton pool record and its custody token account at
their derived addresses, then credits any genesis accounts listed in the pool
config. One-time operation, restricted to the configured authority.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := initPool(); err != nil {
			logx.Error("CLI", "init-pool failed:", err)
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(initPoolCmd)
}

func initPool() error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.close()

	record, err := app.engine.InitializePool(app.cfg.Authority)
	if err != nil {
		return err
	}

	for _, genesis := range app.cfg.Genesis {
		amount, err := uint256.FromDecimal(strings.ReplaceAll(genesis.Amount, "_", ""))
		if err != nil {
			return fmt.Errorf("invalid genesis amount %q for %s: %w", genesis.Amount, genesis.Address, err)
		}
		if err := app.ledger.Mint(genesis.Address, genesis.Address, record.AssetMint, amount); err != nil {
			return fmt.Errorf("could not fund genesis account %s: %w", genesis.Address, err)
		}
	}

	fmt.Printf("Pool %s initialized\n", record.ProtocolName)
	fmt.Printf("  pool record:     %s (bump %d)\n", app.engine.PoolAddress(), record.Bumps.Pool)
	fmt.Printf("  custody account: %s (bump %d)\n", record.CustodyAccount, record.Bumps.Custody)
	fmt.Printf("  genesis accounts funded: %d\n", len(app.cfg.Genesis))
	return nil
}
