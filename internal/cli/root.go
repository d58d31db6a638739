package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gocapacity/internal/domain"
	"gocapacity/pkg/clients/capacity"
)

// CapacityAPI é o subconjunto do cliente HTTP usado pelos comandos.
type CapacityAPI interface {
	FindAvailableWarehouse(ctx context.Context, start, end string, dims domain.ThreeDRoom) (domain.AvailableWarehouseResponse, error)
	FullyUtilizedDates(ctx context.Context, start, end string) ([]string, error)
	AvailableCapacity(ctx context.Context, start, end string) ([]domain.AvailableCapacityEntry, error)
	LeastUsedWarehouse(ctx context.Context, start, end string) (domain.LeastUsedWarehouseResponse, error)
	Warehouses(ctx context.Context) ([]domain.Warehouse, error)
}

type options struct {
	server     string
	token      string
	jsonOutput bool
	timeout    time.Duration

	newClient func(server, token string) CapacityAPI
}

var version = "dev"

// SetVersion define a versão exibida por --version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// NewRootCommand monta a árvore de comandos do capacityctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(func(server, token string) CapacityAPI {
		return capacity.NewClient(server, token)
	})
}

func newRootCommand(factory func(server, token string) CapacityAPI) *cobra.Command {
	opts := &options{newClient: factory}

	root := &cobra.Command{
		Use:     "capacityctl",
		Version: version,
		Short:   "Consulta a capacidade dos armazéns do GoCapacity",
		Long: `capacityctl consulta a API GoCapacity a partir do terminal.

Todas as datas usam o formato YYYY-MM-DD e os intervalos são inclusivos.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVar(&opts.server, "server", envOr("GOCAPACITY_SERVER", "http://localhost:8080"), "URL base da API")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("GOCAPACITY_TOKEN"), "token JWT (Bearer)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "saída em JSON")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "tempo limite da requisição")

	root.AddGroup(
		&cobra.Group{ID: "capacity", Title: "Capacity Queries:"},
		&cobra.Group{ID: "registry", Title: "Registry:"},
	)

	root.AddCommand(
		newFindCmd(opts),
		newFullyUtilizedCmd(opts),
		newAvailableCmd(opts),
		newLeastUsedCmd(opts),
		newWarehousesCmd(opts),
	)
	return root
}

// Execute roda o comando raiz e devolve o código de saída do processo.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		PrintError(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, o.timeout)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireRange(start, end string) error {
	if start == "" || end == "" {
		return fmt.Errorf("--start and --end are required")
	}
	return nil
}
