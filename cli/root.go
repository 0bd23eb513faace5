// Package cli wires the configuration, data sources and views into the
// participativos command line.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"participativos/categories"
	"participativos/config"
	"participativos/models"
	"participativos/services"
	"participativos/storage"
	"participativos/urlstate"
	"participativos/utils"
)

type app struct {
	cfg    *config.Config
	logger *utils.Logger
}

// NewRootCmd builds the command tree. Flags override cfg in place.
func NewRootCmd(cfg *config.Config, logger *utils.Logger) *cobra.Command {
	a := &app{cfg: cfg, logger: logger}
	var browseURL string

	root := &cobra.Command{
		Use:   "participativos",
		Short: "Explorador de propuestas de presupuestos participativos",
		Long: `participativos carga el conjunto de propuestas y sus metadatos,
los fusiona y permite filtrarlos, buscarlos y ordenarlos.

Sin subcomando abre el explorador interactivo.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger.SetLevel(a.cfg.LogLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBrowse(cmd, browseURL)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfg.ProposalsSource, "proposals", cfg.ProposalsSource, "proposals file path or URL")
	pf.StringVar(&cfg.MetadataSource, "metadata", cfg.MetadataSource, "metadata file path or URL")
	pf.StringVar(&cfg.CategoriesFile, "categories", cfg.CategoriesFile, "YAML file overriding category styles")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "DEBUG, INFO, WARN or ERROR")
	root.Flags().StringVar(&browseURL, "url", "", "start from this address or query string")

	root.AddCommand(
		a.browseCmd(),
		a.queryCmd(),
		a.exportCmd(),
		a.statsCmd(),
		a.refreshVotesCmd(),
	)
	return root
}

// session is one decoded view over the loaded dataset.
type session struct {
	dataset  *models.Dataset
	registry *categories.Registry
	codec    *urlstate.Codec
	address  *urlstate.Address
	criteria models.FilterCriteria
	results  []*models.Proposal
}

func (a *app) datasetService() *services.DatasetService {
	loader := storage.NewLoader(a.cfg.ProposalsSource, a.cfg.MetadataSource,
		a.cfg.FetchTimeout, a.cfg.MaxRetries, a.logger)
	return services.NewDatasetService(loader, a.logger)
}

func (a *app) registry() (*categories.Registry, error) {
	r, err := categories.Load(a.cfg.CategoriesFile)
	if err != nil {
		return nil, fmt.Errorf("cli: %w", err)
	}
	return r, nil
}

func (a *app) address(raw string) (*urlstate.Address, error) {
	if raw == "" {
		raw = a.cfg.BaseURL
	} else if !urlstate.IsLocation(raw) {
		base, err := urlstate.ParseAddress(a.cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		q, err := urlstate.ParseAddress(raw)
		if err != nil {
			return nil, err
		}
		base.Replace(q.Params())
		return base, nil
	}
	return urlstate.ParseAddress(raw)
}

// open loads the dataset and applies the state encoded in rawQuery, the way
// the browser does on start-up.
func (a *app) open(ctx context.Context, rawQuery string) (*session, error) {
	registry, err := a.registry()
	if err != nil {
		return nil, err
	}
	addr, err := a.address(rawQuery)
	if err != nil {
		return nil, err
	}

	ds := a.datasetService().Load(ctx)
	codec := urlstate.NewCodec(a.logger)
	criteria := codec.Decode(addr.Params(), services.ValidCategories(ds), services.ZoneIDs(ds.Proposals))
	addr.Replace(codec.Encode(criteria))

	return &session{
		dataset:  ds,
		registry: registry,
		codec:    codec,
		address:  addr,
		criteria: criteria,
		results:  services.Filter(ds.Proposals, criteria),
	}, nil
}
