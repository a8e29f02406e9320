package analytics

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/posthog/posthog-go"
)

const (
	// Build command events - functiondb.Build runs.
	BuildStarted   = "autosar-calltree:build_started"
	BuildCompleted = "autosar-calltree:build_completed"
	BuildFailed    = "autosar-calltree:build_failed"

	// Trace command events - calltree.Builder runs.
	TraceStarted   = "autosar-calltree:trace_started"
	TraceCompleted = "autosar-calltree:trace_completed"
	TraceFailed    = "autosar-calltree:trace_failed"

	// Search command events - functiondb.Search lookups.
	SearchStarted   = "autosar-calltree:search_started"
	SearchCompleted = "autosar-calltree:search_completed"
)

var (
	PublicKey     string
	enableMetrics bool
	appVersion    string
)

func Init(disableMetrics bool) {
	enableMetrics = !disableMetrics
}

func SetVersion(version string) {
	appVersion = version
}

func createEnvFile() {
	homeDir, err := os.UserHomeDir()
	envFile := filepath.Join(homeDir, ".autosar-calltree", ".env")
	if err != nil {
		fmt.Println("Error getting user home directory:", err)
		return
	}
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(envFile), os.ModePerm); err != nil {
			fmt.Println("Error creating directory:", err)
			return
		}
		env := map[string]string{
			"uuid": uuid.New().String(),
		}
		err = godotenv.Write(env, envFile)
		if err != nil {
			fmt.Println("Error writing to .env file:", err)
		}
	}
}

func LoadEnvFile() {
	createEnvFile()
	envFile := filepath.Join(os.Getenv("HOME"), ".autosar-calltree", ".env")
	err := godotenv.Load(envFile)
	if err != nil {
		return
	}
}

func ReportEvent(event string) {
	ReportEventWithProperties(event, nil)
}

// ReportEventWithProperties sends an event with additional properties.
// Properties should not contain any PII (no source file paths, module
// names, or function names).
func ReportEventWithProperties(event string, properties map[string]interface{}) {
	if enableMetrics && PublicKey != "" {
		disableGeoIP := false
		client, err := posthog.NewWithConfig(
			PublicKey,
			posthog.Config{
				Endpoint:     "https://us.i.posthog.com",
				DisableGeoIP: &disableGeoIP,
			},
		)
		if err != nil {
			fmt.Println(err)
			return
		}
		defer client.Close()

		capture := posthog.Capture{
			DistinctId: os.Getenv("uuid"),
			Event:      event,
		}

		captureProperties := posthog.NewProperties()

		captureProperties.Set("os", runtime.GOOS)
		captureProperties.Set("arch", runtime.GOARCH)
		captureProperties.Set("go_version", runtime.Version())
		if appVersion != "" {
			captureProperties.Set("calltree_version", appVersion)
		}

		if properties != nil {
			for k, v := range properties {
				captureProperties.Set(k, v)
			}
		}

		capture.Properties = captureProperties

		err = client.Enqueue(capture)
		if err != nil {
			fmt.Println(err)
			return
		}
	}
}
