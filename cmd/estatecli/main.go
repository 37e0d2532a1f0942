package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/adapter/api"
	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/config"
	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/domain"
	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/estate/usecase"
	"github.com/Bobybuu/real-estate-Gabby-sub000/internal/platform/logger"
)

type app struct {
	sessions  *usecase.SessionUsecase
	listings  *usecase.ListingUsecase
	inquiries *usecase.InquiryUsecase
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() {
		if err := zlog.Sync(); err != nil {
			log.Printf("Error syncing logger: %v\n", err)
		}
	}()

	client, err := api.NewClient(api.Options{
		BaseURL:       cfg.APIBaseURL,
		Timeout:       cfg.HTTPTimeout,
		CSRFCookie:    cfg.CSRFCookieName,
		CSRFIssuePath: cfg.CSRFIssuePath,
	}, zlog)
	if err != nil {
		zlog.Fatal("Failed to build API client", zap.Error(err))
	}

	a := &app{
		sessions: usecase.NewSessionUsecase(client, zlog),
		listings: usecase.NewListingUsecase(client, api.NewResolver(zlog), zlog,
			cfg.APIBaseURL, cfg.MediaPrefix, cfg.ListingCreatePaths),
		inquiries: usecase.NewInquiryUsecase(client, zlog),
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	a.sessions.CheckOnLoad(ctx)

	var runErr error
	switch os.Args[1] {
	case "login":
		runErr = a.login(ctx, os.Args[2:])
	case "logout":
		a.sessions.Logout(ctx)
		fmt.Println("logged out")
	case "whoami":
		runErr = a.whoami(ctx)
	case "search":
		runErr = a.search(ctx, os.Args[2:])
	case "show":
		runErr = a.show(ctx, os.Args[2:])
	case "create":
		runErr = a.create(ctx, os.Args[2:])
	case "favorite":
		runErr = a.favorite(ctx, os.Args[2:])
	case "inquire":
		runErr = a.inquire(ctx, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "error:", renderError(runErr))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: estatecli <command> [flags]

commands:
  login     -email -password
  logout
  whoami
  search    [-query] [-city] [-category] [-min] [-max]
  show      -id
  create    -draft draft.json -media img1.jpg,img2.jpg [-captions a,b] [-primary N]
  favorite  -id [-remove]
  inquire   -kind -name -email [-phone] [-message] [-listing] [-address] [-sqft] [-units]`)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	user, err := a.sessions.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.DisplayName(), user.Role)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	session := a.sessions.Current()
	if !session.Authenticated() {
		fmt.Println("anonymous")
		return nil
	}
	user, err := a.sessions.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> role=%s verified=%v\n", user.DisplayName(), user.Email, user.Role, user.Verified)
	if !session.ExpiresAt.IsZero() {
		fmt.Printf("session expires %s\n", session.ExpiresAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("query", "", "free-text query")
	city := fs.String("city", "", "city filter")
	category := fs.String("category", "", "category filter")
	minPrice := fs.Float64("min", 0, "minimum price")
	maxPrice := fs.Float64("max", 0, "maximum price")
	fs.Parse(args)

	listings, err := a.listings.Search(ctx, domain.SearchFilter{
		Query:    *query,
		City:     *city,
		Category: domain.Category(*category),
		MinPrice: *minPrice,
		MaxPrice: *maxPrice,
	})
	if err != nil {
		return err
	}
	for _, l := range listings {
		fmt.Printf("%-10s %-30s %12.0f  %s, %s\n", l.ID, l.Title, l.Price, l.City, l.Region)
	}
	fmt.Printf("%d listing(s)\n", len(listings))
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	id := fs.String("id", "", "listing id")
	fs.Parse(args)

	listing, err := a.listings.Get(ctx, *id)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(listing, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// draftFile mirrors the wizard's field groups for file-based drafts.
type draftFile struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	Bedrooms    int     `json:"bedrooms"`
	Bathrooms   int     `json:"bathrooms"`
	AreaSqFt    float64 `json:"area_sqft"`
	SizeAcres   float64 `json:"size_acres"`
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	draftPath := fs.String("draft", "", "path to draft JSON")
	media := fs.String("media", "", "comma-separated image paths")
	captions := fs.String("captions", "", "comma-separated captions, parallel to -media")
	primary := fs.Int("primary", 0, "index of the primary image")
	fs.Parse(args)

	raw, err := os.ReadFile(*draftPath)
	if err != nil {
		return fmt.Errorf("read draft: %w", err)
	}
	var df draftFile
	if err := json.Unmarshal(raw, &df); err != nil {
		return fmt.Errorf("parse draft: %w", err)
	}
	draft := &domain.ListingDraft{
		Title:       df.Title,
		Description: df.Description,
		Category:    domain.Category(df.Category),
		Price:       df.Price,
		Address:     df.Address,
		City:        df.City,
		Region:      df.Region,
		Bedrooms:    df.Bedrooms,
		Bathrooms:   df.Bathrooms,
		AreaSqFt:    df.AreaSqFt,
		SizeAcres:   df.SizeAcres,
	}

	captionList := strings.Split(*captions, ",")
	for i, path := range strings.Split(*media, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read media %s: %w", path, err)
		}
		caption := ""
		if i < len(captionList) {
			caption = strings.TrimSpace(captionList[i])
		}
		draft.AddAttachment(domain.MediaAttachment{
			ID:       uuid.NewString(),
			FileName: filepath.Base(path),
			Data:     data,
			Caption:  caption,
		})
	}
	draft.SetPrimary(*primary)

	// Walk every wizard step before submitting, the way the form would.
	for step := usecase.StepBasics; step <= usecase.StepMedia; step++ {
		if check := usecase.CanAdvance(step, draft); !check.OK {
			return fmt.Errorf("step %d: %s", step, check.Reason)
		}
	}

	listing, err := a.listings.CreateWithMedia(ctx, draft, func(pct int) {
		fmt.Printf("  ... %d%%\n", pct)
	})
	if err != nil && listing == nil {
		return err
	}
	fmt.Printf("created listing %s\n", listing.ID)
	if err != nil {
		// Phase 2 failed but the record exists; surface the warning only.
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
	return nil
}

func (a *app) favorite(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("favorite", flag.ExitOnError)
	id := fs.String("id", "", "listing id")
	remove := fs.Bool("remove", false, "remove instead of add")
	fs.Parse(args)

	if *remove {
		return a.listings.RemoveFavorite(ctx, *id)
	}
	return a.listings.AddFavorite(ctx, *id)
}

func (a *app) inquire(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("inquire", flag.ExitOnError)
	kind := fs.String("kind", string(domain.InquiryGeneral), "inquiry kind")
	name := fs.String("name", "", "contact name")
	email := fs.String("email", "", "contact email")
	phone := fs.String("phone", "", "contact phone")
	message := fs.String("message", "", "message body")
	listing := fs.String("listing", "", "listing id, for property inquiries")
	address := fs.String("address", "", "address, for valuation/management requests")
	sqft := fs.String("sqft", "", "square footage, for valuation requests")
	units := fs.String("units", "", "unit count, for management requests")
	fs.Parse(args)

	return a.inquiries.Submit(ctx, domain.Inquiry{
		Kind:            domain.InquiryKind(*kind),
		Name:            *name,
		Email:           *email,
		Phone:           *phone,
		Message:         *message,
		ListingID:       *listing,
		Address:         *address,
		SqFt:            *sqft,
		PropertyAddress: *address,
		Units:           *units,
	})
}

// renderError prefers the classified message over the wrapped chain.
func renderError(err error) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
