// Package app wires the client core together: session guard, API
// client, lifecycle service, contact flow, and listing feed around one
// state controller. It is the layer UI surfaces (the CLI today) talk
// to, and it owns the one-notification-per-outcome policy.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/campuskart/campuskart/internal/api/client"
	"github.com/campuskart/campuskart/internal/appstate"
	"github.com/campuskart/campuskart/internal/auth"
	"github.com/campuskart/campuskart/internal/config"
	"github.com/campuskart/campuskart/internal/contact"
	"github.com/campuskart/campuskart/internal/lifecycle"
	"github.com/campuskart/campuskart/internal/listing"
	"github.com/campuskart/campuskart/internal/metrics"
	"github.com/campuskart/campuskart/internal/notify"
	domain "github.com/campuskart/campuskart/pkg/types"
)

// App is the assembled marketplace client.
type App struct {
	log      *slog.Logger
	notifier notify.Notifier

	Guard     *auth.Guard
	API       *client.Client
	State     *appstate.Controller
	Feed      *listing.Feed
	Lifecycle *lifecycle.Service
	Contact   *contact.Flow

	refresher *listing.Refresher
}

// New builds the client and resolves the session. A missing session is
// terminal for this process: the caller routes the user to the external
// authentication flow and starts over.
func New(
	ctx context.Context,
	cfg *config.Config,
	notifier notify.Notifier,
	log *slog.Logger,
) (*App, error) {
	guard := auth.NewGuard(sessionProvider(cfg), log)

	session, err := guard.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving session: %w", err)
	}

	api := client.New(cfg.API.BaseURL,
		client.WithToken(session.Token),
		client.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		client.WithRateLimit(cfg.API.RateLimit.PerSecond, cfg.API.RateLimit.Burst),
	)

	state := appstate.New(log)
	flow, err := contact.NewFlow(api, state, cfg.Contact.Template, log)
	if err != nil {
		return nil, err
	}

	a := &App{
		log:       log,
		notifier:  notifier,
		Guard:     guard,
		API:       api,
		State:     state,
		Feed:      listing.NewFeed(api, state, log),
		Lifecycle: lifecycle.NewService(api, log),
		Contact:   flow,
	}

	if cfg.Refresh.AutoInterval > 0 {
		r, err := listing.NewRefresher(state, cfg.Refresh.AutoInterval, log)
		if err != nil {
			return nil, fmt.Errorf("creating listing refresher: %w", err)
		}
		a.refresher = r
	}

	return a, nil
}

func sessionProvider(cfg *config.Config) auth.Provider {
	switch {
	case cfg.Auth.Static():
		return &auth.StaticProvider{UserID: cfg.Auth.UserID, Token: cfg.Auth.AccessToken}
	case cfg.Auth.Endpoint != "":
		return auth.NewTokenExchangeProvider(cfg.Auth.Endpoint, cfg.Auth.RefreshToken)
	default:
		// Nothing configured; the guard reports no session.
		return &auth.StaticProvider{}
	}
}

// Start launches background work (the listing auto-refresher, when
// configured).
func (a *App) Start() {
	if a.refresher != nil {
		a.refresher.Start()
	}
}

// Stop winds down background work and waits for in-flight contact
// sends.
func (a *App) Stop() {
	if a.refresher != nil {
		<-a.refresher.Stop().Done()
	}
	a.Contact.Wait()
}

// Browse returns the listing grid's products via the token-keyed feed.
func (a *App) Browse(ctx context.Context) ([]domain.Product, error) {
	return a.Feed.Products(ctx)
}

// Open fetches a product and focuses it, as the detail view opening.
func (a *App) Open(ctx context.Context, productID string) (*domain.Product, error) {
	p, err := a.API.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	a.State.SelectProduct(p)
	return p, nil
}

// Close dismisses the detail view. Any in-flight mutation keeps
// running; its completion still bumps the refresh token.
func (a *App) Close() {
	a.State.ClearSelection()
}

// MarkSold transitions the focused-or-named product to sold. On
// success the updated entity is folded into the UI state; on failure
// the UI stays in its pre-attempt state. Either way the user gets
// exactly one notification.
func (a *App) MarkSold(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	session, ok := a.Guard.Session()
	if !ok {
		err := lifecycle.ErrUnauthenticated
		a.notifyError("You must be logged in to update a product.")
		return nil, err
	}

	updated, err := a.Lifecycle.MarkSold(ctx, p, session.UserID)
	if err != nil {
		a.notifyError(markSoldFailureMessage(err))
		return nil, err
	}

	a.State.ApplyUpdatedProduct(updated)
	a.notifySuccess(updated.Title, fmt.Sprintf("Product %q marked as SOLD!", updated.Title))

	return updated, nil
}

// ContactSeller starts a conversation about the product. The action is
// gated here: a sold product cannot be contacted about. The flow itself
// switches the view immediately and sends in the background.
func (a *App) ContactSeller(p *domain.Product) error {
	if p.Status.Terminal() {
		a.notifyError("This item has been sold.")
		return lifecycle.ErrAlreadySold
	}

	a.Contact.InitiateContact(p)
	return nil
}

// CreateListing lists a new product, switches back to the products
// view, and invalidates the listing cache so the grid shows it.
func (a *App) CreateListing(
	ctx context.Context,
	in *domain.NewProductInput,
) (*domain.Product, error) {
	p, err := a.API.CreateProduct(ctx, in)
	if err != nil {
		a.notifyError("Failed to create the listing. Please try again.")
		return nil, err
	}

	a.State.SetActiveView(domain.ViewProducts)
	a.State.BumpRefresh()
	a.notifySuccess(p.Title, fmt.Sprintf("Product %q listed!", p.Title))

	return p, nil
}

// Messages returns the conversation thread for a product.
func (a *App) Messages(ctx context.Context, productID string) ([]domain.Message, error) {
	return a.API.ListMessages(ctx, productID)
}

func markSoldFailureMessage(err error) string {
	switch lifecycle.FailureReason(err) {
	case "unauthorized":
		return "Only the seller can mark this item as sold."
	case "already_sold":
		return "This item is already sold."
	case "pending":
		return "Hold on, this item is already being updated."
	case "unauthenticated":
		return "You must be logged in to update a product."
	default:
		return "Failed to mark item as sold. Please try again."
	}
}

func (a *App) notifySuccess(title, detail string) {
	a.deliver(notify.Outcome{Success: true, Title: title, Detail: detail})
}

func (a *App) notifyError(detail string) {
	a.deliver(notify.Outcome{Success: false, Detail: detail})
}

func (a *App) deliver(o notify.Outcome) {
	if err := a.notifier.Notify(context.Background(), o); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		a.log.Warn("notification delivery failed", "error", err)
	}
}
