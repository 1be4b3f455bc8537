package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stockd/stockd/client"
	"github.com/stockd/stockd/products"
)

// newProductCmd creates the product command group with its subcommands
func newProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage products",
		Long:  `List, inspect, create, update and delete products on the stockd server.`,
	}

	cmd.AddCommand(newProductListCmd())
	cmd.AddCommand(newProductGetCmd())
	cmd.AddCommand(newProductCreateCmd())
	cmd.AddCommand(newProductUpdateCmd())
	cmd.AddCommand(newProductDeleteCmd())
	return cmd
}

func newProductListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all products, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			list, err := c.ListProducts(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list products: %w", err)
			}

			if jsonOutput {
				printJSON(list)
				return nil
			}

			if len(list) == 0 {
				fmt.Println("No products")
				return nil
			}
			for _, p := range list {
				printProduct(p)
			}
			return nil
		},
	}
}

func newProductGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			p, err := c.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get product: %w", err)
			}

			if jsonOutput {
				printJSON(p)
				return nil
			}
			printProduct(p)
			return nil
		},
	}
}

func newProductCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Long: `Create a product you own. Price is a decimal string with up to two
fraction digits, e.g. "19.99".

Example:
  stockctl product create --name "Widget" --price 19.99 --quantity 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := client.ProductParams{}
			params.Name, _ = cmd.Flags().GetString("name")
			params.Description, _ = cmd.Flags().GetString("description")
			params.Price, _ = cmd.Flags().GetString("price")
			params.Quantity, _ = cmd.Flags().GetInt("quantity")

			c, err := newAPIClient()
			if err != nil {
				return err
			}

			p, err := c.CreateProduct(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}

			if jsonOutput {
				printJSON(p)
				return nil
			}
			okLabel.Printf("Created product %s\n", p.ID)
			return nil
		},
	}

	cmd.Flags().String("name", "", "Product name")
	cmd.Flags().String("description", "", "Product description")
	cmd.Flags().String("price", "", "Price as a decimal string, e.g. 19.99")
	cmd.Flags().Int("quantity", 0, "Stock quantity")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("price")
	return cmd
}

func newProductUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product you own",
		Long: `Update fields of a product you own. Only the flags you pass are changed.
Alternatively pass --file with a JSON document of the fields to update;
when the document carries an "id" field the positional argument may be
omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			id := ""
			if len(args) == 1 {
				id = args[0]
			}

			if file, _ := cmd.Flags().GetString("file"); file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
				p, err := c.UpdateProductRaw(cmd.Context(), id, data)
				if err != nil {
					return fmt.Errorf("failed to update product: %w", err)
				}
				return printUpdated(p)
			}

			if id == "" {
				return fmt.Errorf("product id is required")
			}

			update := client.ProductUpdate{}
			if cmd.Flags().Changed("name") {
				v, _ := cmd.Flags().GetString("name")
				update.Name = &v
			}
			if cmd.Flags().Changed("description") {
				v, _ := cmd.Flags().GetString("description")
				update.Description = &v
			}
			if cmd.Flags().Changed("price") {
				v, _ := cmd.Flags().GetString("price")
				update.Price = &v
			}
			if cmd.Flags().Changed("quantity") {
				v, _ := cmd.Flags().GetInt("quantity")
				update.Quantity = &v
			}

			p, err := c.UpdateProduct(cmd.Context(), id, update)
			if err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
			return printUpdated(p)
		},
	}

	cmd.Flags().String("name", "", "New product name")
	cmd.Flags().String("description", "", "New product description")
	cmd.Flags().String("price", "", "New price as a decimal string")
	cmd.Flags().Int("quantity", 0, "New stock quantity")
	cmd.Flags().StringP("file", "f", "", "JSON file with the fields to update")
	return cmd
}

func newProductDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product you own",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newAPIClient()
			if err != nil {
				return err
			}

			if err := c.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete product: %w", err)
			}

			if jsonOutput {
				printJSON(map[string]interface{}{"status": "success"})
				return nil
			}
			okLabel.Printf("Deleted product %s\n", args[0])
			return nil
		},
	}
}

func printUpdated(p *products.Product) error {
	if jsonOutput {
		printJSON(p)
		return nil
	}
	okLabel.Printf("Updated product %s\n", p.ID)
	return nil
}

func printProduct(p *products.Product) {
	fmt.Printf("%s  %s\n", p.ID, p.Name)
	fmt.Printf("  Price:    %s\n", p.Price)
	fmt.Printf("  Quantity: %d\n", p.Quantity)
	if p.Description != "" {
		fmt.Printf("  About:    %s\n", p.Description)
	}
	fmt.Printf("  Owner:    %s\n", p.CreatorEmail)
	fmt.Printf("  Updated:  %s\n", p.UpdatedAt.Format("2006-01-02 15:04"))
	fmt.Println()
}
