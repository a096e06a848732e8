// Package service contains the business logic; services sit between the
// HTTP handlers and the repositories and are the single place domain
// invariants are enforced.
package service

import (
	"context"
	"sort"
	"strings"

	"github.com/Levuisha/parfumerie/internal/cache"
	"github.com/Levuisha/parfumerie/internal/models"
	"github.com/Levuisha/parfumerie/internal/observability"
	"github.com/Levuisha/parfumerie/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Sort orders accepted by the catalog listing. SortCatalog is the stable
// seeded order and the default for anything unrecognized.
const (
	SortCatalog   = "catalog"
	SortRating    = "rating"
	SortSillage   = "sillage"
	SortLongevity = "longevity"
)

// FilterParams narrows the catalog. Within one field the values are
// alternatives (OR); across fields every populated filter must match (AND).
type FilterParams struct {
	Search     string
	Genders    []string
	Seasons    []string
	TimesOfDay []string
	Brands     []string
}

// CatalogItem is a catalog row with the requesting user's state merged on.
// MyRating and MyShelf stay nil for anonymous requests.
type CatalogItem struct {
	models.Fragrance
	Brand    string              `json:"brand"`
	MyRating *int                `json:"my_rating,omitempty"`
	MyShelf  *models.ShelfStatus `json:"my_shelf,omitempty"`
}

type CatalogService struct {
	catalogRepo repository.CatalogRepository
	ratingRepo  repository.RatingRepository
	shelfRepo   repository.ShelfRepository
	reviewRepo  repository.ReviewRepository
	mirror      *cache.RatingMirror
}

func NewCatalogService(
	catalogRepo repository.CatalogRepository,
	ratingRepo repository.RatingRepository,
	shelfRepo repository.ShelfRepository,
	reviewRepo repository.ReviewRepository,
	mirror *cache.RatingMirror,
) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		ratingRepo:  ratingRepo,
		shelfRepo:   shelfRepo,
		reviewRepo:  reviewRepo,
		mirror:      mirror,
	}
}

// ListFragrances returns the filtered, sorted catalog. userID 0 means the
// request is anonymous and no per-user overlay is applied.
func (s *CatalogService) ListFragrances(ctx context.Context, userID uint, params FilterParams, sortKey string) ([]CatalogItem, error) {
	span, ctx := observability.NewSpan(ctx, "catalog.list",
		trace.WithAttributes(attribute.Bool("catalog.overlay", userID != 0)))
	defer span.End()

	fragrances, err := s.catalogRepo.ListFragrances(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	items := make([]CatalogItem, 0, len(fragrances))
	for i := range fragrances {
		items = append(items, CatalogItem{
			Fragrance: fragrances[i],
			Brand:     fragrances[i].BrandName(),
		})
	}

	if userID != 0 {
		if err := s.overlayUserState(ctx, userID, items); err != nil {
			return nil, err
		}
	}

	items = ApplyFilters(items, params)
	SortItems(items, sortKey)
	return items, nil
}

// GetFragrance returns a single catalog entry with the user's overlay.
func (s *CatalogService) GetFragrance(ctx context.Context, userID, id uint) (*CatalogItem, error) {
	fragrance, err := s.catalogRepo.GetFragrance(ctx, id)
	if err != nil {
		return nil, err
	}

	item := CatalogItem{Fragrance: *fragrance, Brand: fragrance.BrandName()}
	if userID != 0 {
		items := []CatalogItem{item}
		if err := s.overlayUserState(ctx, userID, items); err != nil {
			return nil, err
		}
		item = items[0]
	}
	return &item, nil
}

// BrandOptions returns brand names for filter dropdowns. Only brands that
// appear on at least one catalog row are offered, so the filter can never
// produce an empty result set by construction.
func (s *CatalogService) BrandOptions(ctx context.Context) ([]string, error) {
	return s.catalogRepo.DistinctBrandNames(ctx)
}

// ListReviews returns all reviews for a fragrance, newest first.
func (s *CatalogService) ListReviews(ctx context.Context, fragranceID uint) ([]models.Review, error) {
	if _, err := s.catalogRepo.GetFragrance(ctx, fragranceID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByFragrance(ctx, fragranceID)
}

// overlayUserState merges the user's ratings and shelf statuses onto the
// items in place. Ratings come from the Redis mirror when warm; a cold
// mirror is refilled from the database so the next read is cheap.
func (s *CatalogService) overlayUserState(ctx context.Context, userID uint, items []CatalogItem) error {
	ratings, ok := s.mirror.Load(ctx, userID)
	if !ok {
		stored, err := s.ratingRepo.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		ratings = make(map[uint]int, len(stored))
		for _, r := range stored {
			ratings[r.FragranceID] = r.Score
		}
		s.mirror.Fill(ctx, userID, ratings)
	}

	entries, err := s.shelfRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	shelves := make(map[uint]models.ShelfStatus, len(entries))
	for _, e := range entries {
		shelves[e.FragranceID] = e.Status
	}

	for i := range items {
		if score, ok := ratings[items[i].ID]; ok {
			v := score
			items[i].MyRating = &v
		}
		if status, ok := shelves[items[i].ID]; ok {
			v := status
			items[i].MyShelf = &v
		}
	}
	return nil
}

// ApplyFilters narrows items per FilterParams. The empty FilterParams
// returns the input unchanged, and filtering is a pure function of its
// inputs: applying the same params twice cannot change the result.
func ApplyFilters(items []CatalogItem, params FilterParams) []CatalogItem {
	search := strings.ToLower(strings.TrimSpace(params.Search))
	if search == "" && len(params.Genders) == 0 && len(params.Seasons) == 0 &&
		len(params.TimesOfDay) == 0 && len(params.Brands) == 0 {
		return items
	}

	filtered := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Brand), search) {
			continue
		}
		if !matchesAny(params.Genders, []string{item.Gender}) {
			continue
		}
		if !matchesAny(params.Seasons, item.Season) {
			continue
		}
		if !matchesAny(params.TimesOfDay, item.TimeOfDay) {
			continue
		}
		if !matchesAny(params.Brands, []string{item.Brand}) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// matchesAny reports whether any wanted value appears among the item's
// values, case-insensitively. An empty wanted list matches everything.
func matchesAny(wanted, have []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		for _, h := range have {
			if strings.EqualFold(strings.TrimSpace(w), h) {
				return true
			}
		}
	}
	return false
}

// SortItems orders items in place. All orders are stable, so equal keys
// keep their catalog order and sorting is idempotent.
func SortItems(items []CatalogItem, sortKey string) {
	switch sortKey {
	case SortRating:
		// Each item sorts by the caller's rating when present, its
		// longevity otherwise, so an unrated long-laster can outrank a
		// rated disappointment.
		effective := func(item CatalogItem) int {
			if item.MyRating != nil {
				return *item.MyRating
			}
			return item.Longevity
		}
		sort.SliceStable(items, func(i, j int) bool {
			return effective(items[i]) > effective(items[j])
		})
	case SortSillage:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Sillage > items[j].Sillage
		})
	case SortLongevity:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Longevity > items[j].Longevity
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ID < items[j].ID
		})
	}
}
