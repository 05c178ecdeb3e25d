package main

import (
	"context"
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"bcbdcheck/handlers"
	"bcbdcheck/rules"
	"bcbdcheck/services"
)

func main() {
	app := pocketbase.New()

	var rulesDir string
	app.RootCmd.PersistentFlags().StringVar(&rulesDir, "rules-dir", "",
		"directory of brand catalog *.yaml files overriding the built-in ones")

	app.RootCmd.AddCommand(newValidateCmd(&rulesDir), newBrandsCmd(&rulesDir))

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		reg, err := loadRegistry(rulesDir)
		if err != nil {
			return err
		}
		log.Printf("rules: %d brand catalogs loaded", len(reg.Brands()))

		if rulesDir != "" {
			ctx, cancel := context.WithCancel(context.Background())
			app.OnTerminate().BindFunc(func(te *core.TerminateEvent) error {
				cancel()
				return te.Next()
			})
			if err := reg.Watch(ctx, rulesDir); err != nil {
				log.Printf("rules: cannot watch %s, hot reload disabled: %v", rulesDir, err)
			}
		}

		exporters := services.DefaultExporters()

		se.Router.BindFunc(handlers.ActiveBatchMiddleware(app))

		// ── Upload & report ─────────────────────────────────────
		se.Router.GET("/", handlers.HandleUploadPage(app, reg, exporters))
		se.Router.POST("/validate", handlers.HandleValidate(app, reg, exporters))
		se.Router.GET("/export/{format}", handlers.HandleExport(app, exporters))

		// ── JSON API ────────────────────────────────────────────
		se.Router.GET("/api/brands", handlers.HandleBrandList(reg))
		se.Router.GET("/api/brands/{brand}", handlers.HandleBrandDetail(reg))
		se.Router.POST("/api/validate", handlers.HandleAPIValidate(app, reg))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// loadRegistry loads the built-in catalogs and, when dir is set, the
// overrides found there.
func loadRegistry(dir string) (*rules.Registry, error) {
	reg, err := rules.LoadBuiltin()
	if err != nil {
		return nil, fmt.Errorf("load built-in catalogs: %w", err)
	}
	if dir != "" {
		if err := reg.LoadDir(dir); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
