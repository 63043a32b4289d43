package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/visibi/brand-monitor/internal/brand"
	"github.com/visibi/brand-monitor/internal/config"
	"github.com/visibi/brand-monitor/internal/fetch"
	"github.com/visibi/brand-monitor/internal/llm"
	"github.com/visibi/brand-monitor/internal/notifications"
)

func main() {
	fmt.Println("🔍 VISIBI - API Connectivity Test")
	fmt.Println("=================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	brandURL := "https://slack.com"
	if len(os.Args) > 1 {
		brandURL = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("\n📡 Testing external services...")
	fmt.Println(strings.Repeat("-", 40))

	brandName := testPageFetch(ctx, cfg, brandURL)
	testCompletion(ctx, cfg, brandName)
	testEmail(cfg)

	fmt.Println("\n✅ API connectivity test completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Configure missing keys in .env file")
	fmt.Println("   • Run the server with: go run ./cmd/visibi")
}

func testPageFetch(ctx context.Context, cfg *config.Config, url string) string {
	fmt.Printf("🔸 Testing page fetch for %s... ", url)

	fetcher := fetch.NewHTTPPageFetcher(cfg.PageFetchTimeout)
	page, err := fetcher.Fetch(ctx, url)
	if err != nil {
		name := brand.DeriveNameFromURL(url)
		fmt.Printf("❌ ERROR: %v (falling back to %q)\n", err, name)
		return name
	}

	identity := brand.NewIdentifier(fetcher, cfg.PageFetchTimeout).Identify(ctx, url)
	fmt.Printf("✅ SUCCESS (title %q, brand %q)\n", page.Title, identity.Name)
	return identity.Name
}

func testCompletion(ctx context.Context, cfg *config.Config, brandName string) {
	fmt.Printf("🔸 Testing %s chat completion... ", cfg.OpenAIModel)

	client := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:      cfg.OpenAIAPIKey,
		Model:       cfg.OpenAIModel,
		BaseURL:     cfg.OpenAIBaseURL,
		MaxTokens:   50,
		Temperature: cfg.Temperature,
		Timeout:     cfg.RequestTimeout,
	})
	if !client.IsEnabled() {
		fmt.Printf("⚠️  DISABLED (missing OPENAI_API_KEY)\n")
		return
	}

	completion, err := client.Complete(ctx, fmt.Sprintf("What do you think about %s? Answer in one sentence.", brandName))
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	fmt.Printf("✅ SUCCESS (%d tokens)\n", completion.Usage.TotalTokens)
	fmt.Printf("   📝 Sample: \"%s\"\n", completion.Text)
}

func testEmail(cfg *config.Config) {
	fmt.Printf("🔸 Testing email provider... ")

	service := notifications.NewService(cfg)
	if !cfg.SMTPConfigured() {
		fmt.Printf("⚠️  %s mode (SMTP not configured)\n", service.ProviderName())
		return
	}
	fmt.Printf("✅ %s configured (%s:%d)\n", service.ProviderName(), cfg.SMTPHost, cfg.SMTPPort)
}
