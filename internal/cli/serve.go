package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/moverboard/pkg/assets"
	"github.com/matzehuels/moverboard/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		baseDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes validation and rendering over HTTP. Finished renders are kept
in the configured store ([store] backend = memory, file, redis or mongo) and
served page by page until they expire.

File references in request bodies resolve inside --assets-dir only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			st, err := newStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			runner, err := c.newRunner(ctx, cfg, assets.Config{
				BaseDir:      baseDir,
				Confined:     true,
				DisableFiles: baseDir == "",
			}, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(server.Config{
				Runner:       runner,
				Store:        st,
				Options:      cfg.PipelineOptions(),
				OptionalLogo: cfg.Assets.OptionalLogo,
				TTL:          cfg.Store.TTL.Duration,
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				ReadTimeout:  cfg.Server.ReadTimeout.Duration,
				WriteTimeout: cfg.Server.WriteTimeout.Duration,
				Logger:       c.Logger,
			})
			c.Logger.Info("starting server", "addr", cfg.Server.Addr, "store", cfg.Store.Backend, "cache", cfg.Cache.Backend)
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&baseDir, "assets-dir", "", "directory file references may read from (default: file references disabled)")
	return cmd
}
