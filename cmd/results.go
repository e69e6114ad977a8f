package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/hqcflow/internal/store"
	"github.com/spf13/cobra"
)

var resultsDataDir string

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage stored workflow results",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored results",
	RunE:  runResultsList,
}

var resultsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a stored result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultsShow,
}

var resultsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored result",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultsDelete,
}

func init() {
	resultsCmd.PersistentFlags().StringVar(&resultsDataDir, "data-dir", "./data", "Base directory for result storage")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsShowCmd)
	resultsCmd.AddCommand(resultsDeleteCmd)
	rootCmd.AddCommand(resultsCmd)
}

func openResultStore() (store.Store, error) {
	st, err := store.NewFSStore(resultsDataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open result store: %w", err)
	}
	return st, nil
}

func runResultsList(cmd *cobra.Command, args []string) error {
	st, err := openResultStore()
	if err != nil {
		return err
	}

	infos, err := st.ListResults()
	if err != nil {
		return fmt.Errorf("failed to list results: %w", err)
	}
	if len(infos) == 0 {
		fmt.Println("No results stored.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBACKEND\tQUBITS\tPARAMS\tENERGY\tCONVERGED\tEVALS\tSTARTED")
	for _, info := range infos {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.6f\t%v\t%d\t%s\n",
			info.ID, info.Backend, info.Qubits, info.Parameters,
			info.MinimumEnergy, info.Converged, info.Evaluations,
			info.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func runResultsShow(cmd *cobra.Command, args []string) error {
	st, err := openResultStore()
	if err != nil {
		return err
	}

	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func runResultsDelete(cmd *cobra.Command, args []string) error {
	st, err := openResultStore()
	if err != nil {
		return err
	}

	if err := st.DeleteResult(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted result %s\n", args[0])
	return nil
}
