package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mwinters-dev/chatstate/internal"
	"github.com/spf13/cobra"
)

var inspectKey string

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump the raw contents of the state slot",
	Long: `Low-level view of the key-value slot backing the persisted state.

Without flags, lists every stored key with its value size. With --key, prints
the value itself, pretty-printed when it is JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openArchive()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		kv := internal.NewKV(db)

		if inspectKey != "" {
			value, ok, err := kv.Get(inspectKey)
			if err != nil {
				return fmt.Errorf("failed to read key: %w", err)
			}
			if !ok {
				return fmt.Errorf("key not found: %s", inspectKey)
			}

			var pretty bytes.Buffer
			if json.Indent(&pretty, []byte(value), "", "  ") == nil {
				fmt.Println(pretty.String())
			} else {
				fmt.Println(value)
			}
			return nil
		}

		infos, err := kv.Keys()
		if err != nil {
			return fmt.Errorf("failed to list keys: %w", err)
		}
		if len(infos) == 0 {
			fmt.Println("No keys stored")
			return nil
		}
		for _, info := range infos {
			fmt.Printf("%-40s %8d bytes\n", info.Key, info.Size)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectKey, "key", "k", "", "Print the value stored under this key")
}
