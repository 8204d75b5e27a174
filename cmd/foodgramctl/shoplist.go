package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"foodgram/internal/modules/shoplist"
	"foodgram/internal/repository"
)

// outputFile is set by the --output flag of shop-list.
var outputFile string

var shopListCmd = &cobra.Command{
	Use:   "shop-list <user-id>",
	Short: "Print the consolidated shopping list of a user",
	Long: `Shop-list prints the same text the API serves as shop-list.txt.

Example:
  foodgramctl shop-list 2
  foodgramctl shop-list 2 --output shop-list.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runShopList,
}

func init() {
	shopListCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write to file instead of stdout")
}

func runShopList(cmd *cobra.Command, args []string) error {
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %q", args[0])
	}

	svc := shoplist.NewService(repository.NewShoppingListRepository(db))
	text, err := svc.Text(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("build shopping list: %w", err)
	}

	if outputFile == "" {
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}
	return os.WriteFile(outputFile, []byte(text), 0o644)
}
