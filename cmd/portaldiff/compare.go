package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/johnwards/portaldiff/internal/compare"
	"github.com/johnwards/portaldiff/internal/domain"
	"github.com/johnwards/portaldiff/internal/hubspot"
)

var compareFlags struct {
	tokenA       string
	tokenB       string
	objectType   string
	objectTypeA  string
	objectTypeB  string
	associations bool
	baseURL      string
	output       string
	timeout      time.Duration
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run one comparison and print the result as JSON",
	Long: `compare fetches schema metadata from both portals once, without a
server or a session, and writes the comparison result as indented JSON.

Compare one object type across both portals:

  portaldiff compare --token-a ... --token-b ... --object contacts

Compare two custom object types that carry different ids per portal:

  portaldiff compare --token-a ... --token-b ... --object-a 2-123 --object-b 2-456

Compare association definitions:

  portaldiff compare --token-a ... --token-b ... --associations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompare()
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	flags := compareCmd.Flags()
	flags.StringVar(&compareFlags.tokenA, "token-a", "", "private app token for portal A (required)")
	flags.StringVar(&compareFlags.tokenB, "token-b", "", "private app token for portal B (required)")
	flags.StringVar(&compareFlags.objectType, "object", "", "object type to compare on both portals")
	flags.StringVar(&compareFlags.objectTypeA, "object-a", "", "portal A object type for a cross-object comparison")
	flags.StringVar(&compareFlags.objectTypeB, "object-b", "", "portal B object type for a cross-object comparison")
	flags.BoolVar(&compareFlags.associations, "associations", false, "compare association definitions instead of properties")
	flags.StringVar(&compareFlags.baseURL, "base-url", "", "override the HubSpot API base URL")
	flags.StringVar(&compareFlags.output, "output", "", "write the result to a file instead of stdout")
	flags.DurationVar(&compareFlags.timeout, "timeout", 30*time.Second, "per-request timeout")
	_ = compareCmd.MarkFlagRequired("token-a")
	_ = compareCmd.MarkFlagRequired("token-b")
}

func runCompare() error {
	crossObject := compareFlags.objectTypeA != "" || compareFlags.objectTypeB != ""
	switch {
	case compareFlags.associations && (compareFlags.objectType != "" || crossObject):
		return fmt.Errorf("--associations cannot be combined with object flags")
	case crossObject && (compareFlags.objectTypeA == "" || compareFlags.objectTypeB == ""):
		return fmt.Errorf("--object-a and --object-b must be set together")
	case crossObject && compareFlags.objectType != "":
		return fmt.Errorf("use either --object or --object-a/--object-b, not both")
	case !compareFlags.associations && !crossObject && compareFlags.objectType == "":
		return fmt.Errorf("one of --object, --object-a/--object-b or --associations is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clientA := compareClient(compareFlags.tokenA)
	clientB := compareClient(compareFlags.tokenB)

	var (
		result any
		err    error
	)
	switch {
	case compareFlags.associations:
		result, err = compareAssociations(ctx, clientA, clientB)
	case crossObject:
		result, err = compareObjectProperties(ctx, clientA, clientB, compareFlags.objectTypeA, compareFlags.objectTypeB, true)
	default:
		result, err = compareObjectProperties(ctx, clientA, clientB, compareFlags.objectType, compareFlags.objectType, false)
	}
	if err != nil {
		return err
	}

	return writeResult(result)
}

func compareClient(token string) *hubspot.Client {
	opts := []hubspot.Option{hubspot.WithTimeout(compareFlags.timeout)}
	if compareFlags.baseURL != "" {
		opts = append(opts, hubspot.WithBaseURL(compareFlags.baseURL))
	}
	return hubspot.New(token, opts...)
}

func compareObjectProperties(ctx context.Context, clientA, clientB *hubspot.Client, objectTypeA, objectTypeB string, crossObject bool) (*domain.ComparisonResult, error) {
	propsA, err := clientA.Properties(ctx, objectTypeA)
	if err != nil {
		return nil, fmt.Errorf("portal a: %w", err)
	}
	propsB, err := clientB.Properties(ctx, objectTypeB)
	if err != nil {
		return nil, fmt.Errorf("portal b: %w", err)
	}

	if crossObject {
		result := compare.ComparePropertiesExcludeGroup(propsA, propsB)
		result.ObjectType = fmt.Sprintf("Custom Object (%s vs %s)", objectTypeA, objectTypeB)
		return result, nil
	}
	result := compare.CompareProperties(propsA, propsB)
	result.ObjectType = objectTypeA
	return result, nil
}

func compareAssociations(ctx context.Context, clientA, clientB *hubspot.Client) (*domain.AssociationComparisonResult, error) {
	customA, err := clientA.CustomObjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("portal a: %w", err)
	}
	customB, err := clientB.CustomObjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("portal b: %w", err)
	}
	assocA, err := clientA.Associations(ctx, customA)
	if err != nil {
		return nil, fmt.Errorf("portal a: %w", err)
	}
	assocB, err := clientB.Associations(ctx, customB)
	if err != nil {
		return nil, fmt.Errorf("portal b: %w", err)
	}
	return compare.CompareAssociations(assocA, assocB, customA, customB), nil
}

func writeResult(result any) error {
	out := os.Stdout
	if compareFlags.output != "" {
		f, err := os.Create(compareFlags.output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}
