package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/avivitomchishen/nova-poshta-api/pkg/novaposhta"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "novaposhta",
	Short:   "Nova Poshta carrier API client",
	Version: version,
}

var citiesCmd = &cobra.Command{
	Use:   "cities <query>",
	Short: "Search cities by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		page, _ := cmd.Flags().GetInt("page")
		return printJSON(client.FindCityByName(cmd.Context(), args[0], limit, page))
	},
}

var warehousesCmd = &cobra.Command{
	Use:   "warehouses",
	Short: "Search warehouses by city ref, number or free text",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}

		query := novaposhta.WarehouseQuery{}
		query.CityRef, _ = cmd.Flags().GetString("city-ref")
		query.Search, _ = cmd.Flags().GetString("search")
		query.CityLabel, _ = cmd.Flags().GetString("city")
		query.Limit, _ = cmd.Flags().GetInt("limit")
		query.Page, _ = cmd.Flags().GetInt("page")
		if cmd.Flags().Changed("number") {
			n, _ := cmd.Flags().GetInt("number")
			query.WarehouseNumber = &n
		}

		return printJSON(client.FindWarehouseInCity(cmd.Context(), query))
	},
}

var sendersCmd = &cobra.Command{
	Use:   "senders",
	Short: "List sender counterparties with their first contact person",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		return printJSON(client.GetSenderData(cmd.Context()))
	},
}

var trackCmd = &cobra.Command{
	Use:   "track <ttn>",
	Short: "Fetch the tracking status of a waybill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		shipment := novaposhta.Shipment{
			Delivery: novaposhta.Delivery{TrackingNumber: args[0]},
		}
		return printJSON(client.WaybillStatus(cmd.Context(), shipment))
	},
}

var documentCmd = &cobra.Command{
	Use:   "document <ref>",
	Short: "Download the printable waybill document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}

		res := client.PrintWaybillDoc(cmd.Context(), args[0])
		if !res.Success {
			return printJSON(res)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = res.Document.Filename
		}
		if err := writeDocument(out, res.Document); err != nil {
			return err
		}
		logger.Info("Document saved",
			zap.String("file", out),
			zap.String("content_type", res.Document.ContentType),
			zap.Int("status", res.HTTPStatus),
		)
		return nil
	},
}

var validateKeyCmd = &cobra.Command{
	Use:   "validate-key",
	Short: "Check whether the configured API key is accepted",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()
		cmd.Println(strconv.FormatBool(client.IsValidKey(ctx)))
		return nil
	},
}

func init() {
	citiesCmd.Flags().Int("limit", 50, "page size")
	citiesCmd.Flags().Int("page", 1, "page number")

	warehousesCmd.Flags().String("city-ref", "", "city reference filter")
	warehousesCmd.Flags().Int("number", 0, "warehouse number filter")
	warehousesCmd.Flags().String("search", "", "free-text filter")
	warehousesCmd.Flags().String("city", "", "city label for diagnostics")
	warehousesCmd.Flags().Int("limit", 50, "page size")
	warehousesCmd.Flags().Int("page", 1, "page number")

	documentCmd.Flags().String("out", "", "output file (defaults to the carrier-reported filename)")

	rootCmd.AddCommand(citiesCmd, warehousesCmd, sendersCmd, trackCmd, documentCmd, validateKeyCmd)
}
