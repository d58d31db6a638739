package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gocapacity/internal/domain"
)

func addRangeFlags(cmd *cobra.Command, start, end *string) {
	cmd.Flags().StringVar(start, "start", "", "data inicial (YYYY-MM-DD)")
	cmd.Flags().StringVar(end, "end", "", "data final (YYYY-MM-DD)")
}

func newFindCmd(opts *options) *cobra.Command {
	var start, end string
	var dims domain.ThreeDRoom

	cmd := &cobra.Command{
		Use:     "find",
		GroupID: "capacity",
		Short:   "Encontra o primeiro armazém que comporta um item",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRange(start, end); err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			resp, err := opts.newClient(opts.server, opts.token).FindAvailableWarehouse(ctx, start, end, dims)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), resp)
			}

			out := cmd.OutOrStdout()
			if !resp.Found {
				PrintWarning(out, "No warehouse can fit the item between %s and %s", start, end)
				return nil
			}
			PrintSuccess(out, "Warehouse %d can fit the item", resp.WarehouseID)
			return nil
		},
	}
	addRangeFlags(cmd, &start, &end)
	cmd.Flags().Float64Var(&dims.Height, "height", 0, "altura do item")
	cmd.Flags().Float64Var(&dims.Width, "width", 0, "largura do item")
	cmd.Flags().Float64Var(&dims.Length, "length", 0, "comprimento do item")
	return cmd
}

func newFullyUtilizedCmd(opts *options) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:     "fully-utilized",
		GroupID: "capacity",
		Short:   "Lista os dias em que todos os armazéns estão cheios",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRange(start, end); err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			dates, err := opts.newClient(opts.server, opts.token).FullyUtilizedDates(ctx, start, end)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), domain.FullyUtilizedResponse{Dates: dates})
			}

			out := cmd.OutOrStdout()
			if len(dates) == 0 {
				PrintInfo(out, "No fully utilized dates")
				return nil
			}
			PrintSection(out, "Fully utilized dates")
			for _, d := range dates {
				PrintListItem(out, "•", d)
			}
			return nil
		},
	}
	addRangeFlags(cmd, &start, &end)
	return cmd
}

func newAvailableCmd(opts *options) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:     "available",
		GroupID: "capacity",
		Short:   "Mostra a capacidade disponível por dia",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRange(start, end); err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			daily, err := opts.newClient(opts.server, opts.token).AvailableCapacity(ctx, start, end)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), daily)
			}

			out := cmd.OutOrStdout()
			PrintSection(out, "Available capacity")
			for _, entry := range daily {
				if entry.Available < 0 {
					PrintLabelValue(out, entry.Date, fmt.Sprintf("%g (overbooked)", entry.Available))
					continue
				}
				PrintLabelValue(out, entry.Date, fmt.Sprintf("%g", entry.Available))
			}
			return nil
		},
	}
	addRangeFlags(cmd, &start, &end)
	return cmd
}

func newLeastUsedCmd(opts *options) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:     "least-used",
		GroupID: "capacity",
		Short:   "Mostra o armazém com menor uso no intervalo",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRange(start, end); err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			resp, err := opts.newClient(opts.server, opts.token).LeastUsedWarehouse(ctx, start, end)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), resp)
			}

			out := cmd.OutOrStdout()
			if !resp.Found {
				PrintWarning(out, "No warehouse has any usage between %s and %s", start, end)
				return nil
			}
			PrintSuccess(out, "Least used warehouse: %d", resp.WarehouseID)
			return nil
		},
	}
	addRangeFlags(cmd, &start, &end)
	return cmd
}

func newWarehousesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "warehouses",
		GroupID: "registry",
		Short:   "Lista os armazéns cadastrados",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			warehouses, err := opts.newClient(opts.server, opts.token).Warehouses(ctx)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return outputJSON(cmd.OutOrStdout(), warehouses)
			}

			out := cmd.OutOrStdout()
			if len(warehouses) == 0 {
				PrintInfo(out, "No warehouses registered")
				return nil
			}
			PrintSection(out, fmt.Sprintf("Warehouses (%d)", len(warehouses)))
			for _, w := range warehouses {
				PrintListItem(out, "•", fmt.Sprintf("%d %s  volume=%g  items=%d", w.ID, w.Name, w.Volume(), len(w.Items)))
			}
			return nil
		},
	}
}
