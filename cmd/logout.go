package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/janakan-45/banana-brain-blitz/internal/api"
	"github.com/janakan-45/banana-brain-blitz/internal/logging"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		st, err := openStore(cmd, cfg.DataDir)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		creds, err := st.Credentials(ctx)
		if err != nil {
			return fmt.Errorf("read credentials: %w", err)
		}
		if !creds.HasTokens() {
			fmt.Println("Not signed in.")
			return nil
		}

		// Best effort: the remote logout may fail, the local session
		// still goes away.
		all, _ := cmd.Flags().GetBool("all")
		client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, logging.Nop())
		client.SetToken(creds.AccessToken)
		var remoteErr error
		if all {
			remoteErr = client.LogoutAll(ctx)
		} else {
			remoteErr = client.Logout(ctx, creds.DeviceID)
		}
		if remoteErr != nil {
			fmt.Fprintln(os.Stderr, "Remote logout failed:", remoteErr)
		}

		if err := st.ClearCredentials(ctx); err != nil {
			return fmt.Errorf("clear credentials: %w", err)
		}
		fmt.Println("Signed out.")
		return nil
	},
}

func init() {
	logoutCmd.Flags().Bool("all", false, "Sign out of every device")
}
