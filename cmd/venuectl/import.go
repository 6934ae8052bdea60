package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/emx/guzellikharitam-backend/config"
	"github.com/emx/guzellikharitam-backend/internal/app/model"
	"github.com/emx/guzellikharitam-backend/internal/app/repository"
	"github.com/emx/guzellikharitam-backend/internal/app/service"
	"github.com/emx/guzellikharitam-backend/internal/db"
	"github.com/emx/guzellikharitam-backend/pkg/util"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"
)

// Column layout of the import sheet. The first row is a header.
const (
	colName = iota
	colCategory
	colProvince
	colDistrict
	colAddress
	colLatitude
	colLongitude
	colDescription
	colFeatures
	colPaymentOptions
	minColumns = colLongitude + 1
)

type locationLookup interface {
	FindVenueCategoryByName(ctx context.Context, name string) (*model.VenueCategory, error)
	FindProvinceByName(ctx context.Context, name string) (*model.Province, error)
	FindDistrictByName(ctx context.Context, provinceID uint, name string) (*model.District, error)
}

type venueSaver interface {
	SaveVenue(ctx context.Context, req service.SaveVenueRequest) (*service.SaveVenueResult, error)
}

// skippedRow records why a sheet row was not imported. Row is 1-based as shown in spreadsheets.
type skippedRow struct {
	Row    int
	Reason string
}

func importCmd() *cobra.Command {
	var (
		dryRun bool
		yes    bool
		plan   string
	)

	cmd := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Create venues from the first sheet of an XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			conn, err := db.Open(&cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close(conn)

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			rows, err := readSheet(args[0])
			if err != nil {
				return err
			}

			requests, skipped := parseVenueRows(ctx, rows, repository.NewLocationRepository(conn), model.SubscriptionPlan(plan))
			for _, s := range skipped {
				fmt.Fprintf(out, "row %d skipped: %s\n", s.Row, s.Reason)
			}
			fmt.Fprintf(out, "Venues to import: %d (skipped %d)\n", len(requests), len(skipped))

			if dryRun || len(requests) == 0 {
				return nil
			}
			if !yes && !confirm(cmd.InOrStdin(), out) {
				fmt.Fprintln(out, "Import cancelled.")
				return nil
			}

			venueService := service.NewVenueService(
				repository.NewVenueRepository(conn),
				repository.NewServiceAssignmentRepository(conn),
				repository.NewSpecialistRepository(conn),
				repository.NewPhotoRepository(conn),
				repository.NewSubscriptionRepository(conn),
				nil,
				nil,
			)
			created, failed := importVenues(ctx, venueService, requests, out)
			fmt.Fprintf(out, "Import finished: %d created, %d failed\n", created, failed)
			if failed > 0 {
				return fmt.Errorf("%d venues failed to import", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and resolve rows without writing")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVar(&plan, "plan", string(model.PlanFree), "Subscription plan for imported venues")
	return cmd
}

func readSheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}
	return rows, nil
}

// parseVenueRows turns sheet rows into save requests, resolving category, province and district
// names to their ids. Rows that cannot be resolved are reported instead of failing the import.
func parseVenueRows(ctx context.Context, rows [][]string, lookup locationLookup, plan model.SubscriptionPlan) ([]service.SaveVenueRequest, []skippedRow) {
	var (
		requests []service.SaveVenueRequest
		skipped  []skippedRow
	)
	seen := make(map[string]bool)

	for i, row := range rows {
		if i == 0 {
			continue
		}
		rowNum := i + 1
		skip := func(reason string) {
			skipped = append(skipped, skippedRow{Row: rowNum, Reason: reason})
		}

		if len(row) < minColumns {
			skip("missing columns")
			continue
		}

		name := cell(row, colName)
		if name == "" {
			skip("name is empty")
			continue
		}

		category, err := lookup.FindVenueCategoryByName(ctx, cell(row, colCategory))
		if err != nil {
			skip(fmt.Sprintf("unknown category %q", cell(row, colCategory)))
			continue
		}
		province, err := lookup.FindProvinceByName(ctx, cell(row, colProvince))
		if err != nil {
			skip(fmt.Sprintf("unknown province %q", cell(row, colProvince)))
			continue
		}

		var districtID *uint
		if districtName := cell(row, colDistrict); districtName != "" {
			district, err := lookup.FindDistrictByName(ctx, province.ID, districtName)
			if err != nil {
				skip(fmt.Sprintf("unknown district %q in %s", districtName, province.Name))
				continue
			}
			districtID = &district.ID
		}

		lat, errLat := strconv.ParseFloat(strings.Replace(cell(row, colLatitude), ",", ".", 1), 64)
		lng, errLng := strconv.ParseFloat(strings.Replace(cell(row, colLongitude), ",", ".", 1), 64)
		if errLat != nil || errLng != nil || !util.ValidCoordinates(lat, lng) {
			skip("invalid coordinates")
			continue
		}

		key := strings.ToLower(name) + "|" + province.Name + "|" + cell(row, colAddress)
		if seen[key] {
			skip("duplicate venue")
			continue
		}
		seen[key] = true

		requests = append(requests, service.SaveVenueRequest{
			Venue: service.VenueInput{
				Name:           name,
				Description:    cell(row, colDescription),
				Address:        cell(row, colAddress),
				CategoryID:     category.ID,
				ProvinceID:     province.ID,
				DistrictID:     districtID,
				Latitude:       &lat,
				Longitude:      &lng,
				Features:       splitList(cell(row, colFeatures)),
				PaymentOptions: splitList(cell(row, colPaymentOptions)),
			},
			Plan: plan,
		})
	}
	return requests, skipped
}

// importVenues saves each request through the aggregate writer and reports per-row failures.
func importVenues(ctx context.Context, saver venueSaver, requests []service.SaveVenueRequest, out io.Writer) (created, failed int) {
	for _, req := range requests {
		result, err := saver.SaveVenue(ctx, req)
		if err != nil {
			failed++
			fmt.Fprintf(out, "failed %q: %v\n", req.Venue.Name, err)
			continue
		}
		created++
		fmt.Fprintf(out, "created %s %q\n", result.VenueID, req.Venue.Name)
	}
	return created, failed
}

func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Do you want to proceed with the import? (yes/no): ")
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func splitList(s string) []string {
	var items []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
