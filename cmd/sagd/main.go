// Command sagd runs the SAG sanitizer as an HTTP service: agents post raw
// wire text to /sanitize and get back the parsed message plus any
// routing/schema/guardrail failures, without having to embed the runtime
// themselves.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	sag "github.com/sagproto/sag"
	"github.com/sagproto/sag/internal/schema"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	agentRegistryPath := flag.String("agent-registry", "", "path to a YAML agent allow-list file")
	verbSchemasPath := flag.String("verb-schemas", "", "path to a YAML verb schema profile file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sagd: failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var agentReg *sag.MapAgentRegistry
	if *agentRegistryPath != "" {
		agentReg, err = sag.LoadAgentRegistryYAML(*agentRegistryPath)
		if err != nil {
			logger.Fatal("loading agent registry", zap.Error(err))
		}
	} else {
		agentReg = sag.NewMapAgentRegistry(nil)
	}

	schemaReg := sag.NewRegistry()
	if *verbSchemasPath != "" {
		if err := schema.LoadVerbSchemasYAML(*verbSchemasPath, schemaReg); err != nil {
			logger.Fatal("loading verb schemas", zap.Error(err))
		}
	}

	guardCtx := sag.NewMapContext()
	sanitizer := sag.NewSanitizer(schemaReg, agentReg, guardCtx)

	mux := http.NewServeMux()
	mux.HandleFunc("/sanitize", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		var body struct {
			Text      string `json:"text"`
			FromAgent string `json:"from_agent"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		result := sanitizer.Sanitize(body.Text, body.FromAgent)
		logger.Info("sanitize",
			zap.Bool("valid", result.Valid),
			zap.Int("error_count", len(result.Errors)),
			zap.String("from_agent", body.FromAgent),
		)

		status := http.StatusOK
		if !result.Valid {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, result)
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("sagd listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
