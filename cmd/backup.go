package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abonetti/vetprep/internal/backup"
	"github.com/abonetti/vetprep/internal/config"
	"github.com/abonetti/vetprep/internal/storage"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Save or restore the cloud backup",
}

var backupSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Upload the current state to Google Drive",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := driveClient()
		if err != nil {
			return err
		}
		st, contentStore, progressStore, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		snap := backup.NewSnapshot(contentStore, progressStore)
		if err := client.Save(cmd.Context(), snap); err != nil {
			return backupErr(err)
		}
		fmt.Println("Backup saved.")
		return nil
	},
}

var backupLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Replace local state with the cloud backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := driveClient()
		if err != nil {
			return err
		}
		st, contentStore, progressStore, err := openStores(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		snap, found, err := client.Load(cmd.Context())
		if err != nil {
			return backupErr(err)
		}
		if !found {
			fmt.Println("No cloud backup found.")
			return nil
		}

		snap.Restore(contentStore, progressStore)
		storage.PersistContent(st, contentStore)
		storage.PersistProgress(st, progressStore)
		fmt.Printf("Backup from %s restored.\n", snap.SavedAt.Format("2006-01-02 15:04"))
		return nil
	},
}

func driveClient() (*backup.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	client := backup.NewClient(cfg.Backup(), nil)
	if !client.Enabled() {
		return nil, errors.New("no Drive token configured (set VETPREP_DRIVE_TOKEN)")
	}
	return client, nil
}

func backupErr(err error) error {
	var auth *backup.ErrNotAuthenticated
	if errors.As(err, &auth) {
		return errors.New("Drive rejected the token; re-authenticate and try again")
	}
	return err
}

func init() {
	backupCmd.AddCommand(backupSaveCmd)
	backupCmd.AddCommand(backupLoadCmd)
}
