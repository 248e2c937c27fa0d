// Command vasset drives the asset import and packaging pipeline from
// the shell: importing source files into cooked assets, and packing
// the cooked tree into a distributable PKG archive.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vasset/codec"
	"vasset/internal/config"
	"vasset/internal/vlog"
	"vasset/importer"
	"vasset/registry"
	"vasset/vpk"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vasset:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var debug bool

	root := &cobra.Command{
		Use:           "vasset",
		Short:         "cook source assets into the vasset package pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return vlog.Init(debug)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "vasset.toml", "path to the pipeline config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging")

	root.AddCommand(newImportCmd(&configPath), newPackCmd(&configPath))
	return root
}

func loadRegistry(cfg config.Config, assetRoot string) (*registry.Registry, string) {
	reg := registry.New()
	reg.SetAssetRoot(assetRoot)
	reg.SetImportedFolderName(cfg.ImportedFolder)

	regPath := filepath.Join(assetRoot, cfg.ImportedFolder, "asset_registry.vreg")
	if err := reg.Load(regPath); err != nil {
		vlog.Log.Debugw("starting with an empty registry", "path", regPath, "err", err)
	}
	return reg, regPath
}

func newImportCmd(configPath *string) *cobra.Command {
	var reimport bool

	cmd := &cobra.Command{
		Use:   "import <asset-root>",
		Short: "import or reimport every source asset under asset-root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assetRoot := args[0]
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			reg, regPath := loadRegistry(cfg, assetRoot)

			textures := &importer.TextureImporter{
				Registry: reg,
				Options: importer.TextureOptions{
					GenerateMipmaps:  cfg.Texture.GenerateMipmaps,
					FlipY:            cfg.Texture.FlipY,
					QualityLevel:     cfg.Texture.QualityLevel,
					CompressionLevel: cfg.Texture.CompressionLevel,
				},
				Logger: vlog.Log,
			}
			meshes := &importer.MeshImporter{
				Registry:  reg,
				Textures:  textures,
				Options:   importer.MeshOptions{GenerateMeshlets: cfg.Mesh.GenerateMeshlets},
				ZstdLevel: cfg.ZstdLevel,
				Logger:    vlog.Log,
			}
			pipeline := &importer.Pipeline{Textures: textures, Meshes: meshes, Logger: vlog.Log}

			clean, err := pipeline.ImportOrReimportFolder(assetRoot, reimport)
			if err != nil {
				return fmt.Errorf("walk %s: %w", assetRoot, err)
			}

			reg.Cleanup()
			if err := reg.Save(regPath); err != nil {
				return fmt.Errorf("save registry: %w", err)
			}

			if !clean {
				return fmt.Errorf("one or more assets failed to import; see log output above")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reimport, "reimport", false, "reimport every source file, ignoring the registry cache")
	return cmd
}

func newPackCmd(configPath *string) *cobra.Command {
	var zstdLevel int

	cmd := &cobra.Command{
		Use:   "pack <asset-root> <out.pkg>",
		Short: "gather every cooked asset into a content-addressed PKG archive",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assetRoot, outPath := args[0], args[1]
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if zstdLevel <= 0 {
				zstdLevel = cfg.ZstdLevel
			}

			items, err := gatherPackItems(assetRoot)
			if err != nil {
				return fmt.Errorf("scan %s: %w", assetRoot, err)
			}

			if err := vpk.Write(outPath, items, zstdLevel); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			vlog.Log.Infow("packed asset archive", "path", outPath, "fileCount", len(items))
			return nil
		},
	}
	cmd.Flags().IntVar(&zstdLevel, "zstd", 0, "zstd compression level (0 uses the config default)")
	return cmd
}

// gatherPackItems walks assetRoot for `.vimport` sidecars and turns
// each into a pack item keyed by the descriptor's logical source path,
// with the payload read from its cooked output — the pack contract is
// driven by import descriptors, not the registry.
func gatherPackItems(assetRoot string) ([]vpk.Item, error) {
	var items []vpk.Item
	err := filepath.WalkDir(assetRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".vimport") {
			return nil
		}
		desc, err := codec.LoadVimport(path)
		if err != nil {
			vlog.Log.Warnw("skipping invalid import descriptor", "path", path, "err", err)
			return nil
		}
		outPath := filepath.Join(assetRoot, desc.Output)
		data, err := os.ReadFile(outPath)
		if err != nil {
			vlog.Log.Warnw("skipping unreadable cooked asset", "vimport", path, "output", outPath, "err", err)
			return nil
		}
		items = append(items, vpk.Item{Path: desc.Source, Data: data, AllowCompress: true})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
