package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/developermasrurhassan/chill-gamer-client/internal/catalog"
	appcfg "github.com/developermasrurhassan/chill-gamer-client/internal/config"
	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
	"github.com/developermasrurhassan/chill-gamer-client/internal/gamerapi"
	"github.com/developermasrurhassan/chill-gamer-client/internal/library"
	"github.com/developermasrurhassan/chill-gamer-client/internal/msgcat"
	"github.com/developermasrurhassan/chill-gamer-client/internal/nav"
	"github.com/developermasrurhassan/chill-gamer-client/internal/obslog"
	"github.com/developermasrurhassan/chill-gamer-client/internal/reviews"
	"github.com/developermasrurhassan/chill-gamer-client/internal/search"
	"github.com/developermasrurhassan/chill-gamer-client/internal/session"
	"github.com/developermasrurhassan/chill-gamer-client/internal/watchlist"
)

type app struct {
	cfg    *appcfg.AppConfig
	sess   session.Session
	lib    *library.Manager
	rev    *reviews.Manager
	search *search.Searcher
	watch  *watchlist.Manager
	msg    *msgcat.Catalog
}

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}

	msg, err := msgcat.New(cfg.MessageDir)
	if err != nil {
		log.Fatalf("message catalog error: %v", err)
	}

	client := gamerapi.NewClient(cfg.APIBaseURL,
		gamerapi.WithTimeout(cfg.HTTPTimeout),
		gamerapi.WithRetry(cfg.FallbackRetry),
	)

	var libStore library.Store = library.NewMemStore(cfg.SnapshotTTL)
	var wlStore watchlist.Store = watchlist.NewMemStore()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis url error: %v", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("redis ping: %v", err)
		}
		libStore = library.NewRedisStore(rdb, cfg.SnapshotTTL)
		wlStore = watchlist.NewRedisStore(rdb)
	}

	var sess session.Session = session.Anonymous()
	if cfg.UserEmail != "" {
		sess = session.NewStatic(domain.User{Email: cfg.UserEmail, DisplayName: cfg.UserName}, session.Role(cfg.UserRole))
	}

	a := &app{
		cfg:    cfg,
		sess:   sess,
		lib:    library.NewManager(client, libStore),
		rev:    reviews.NewManager(client),
		search: search.NewSearcher(client),
		watch:  watchlist.NewManager(client, wlStore, msg),
		msg:    msg,
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "games":
		err = a.cmdGames(ctx, os.Args[2:])
	case "game":
		err = a.cmdGame(ctx, os.Args[2:])
	case "reviews":
		err = a.cmdReviews(ctx, os.Args[2:])
	case "add-review":
		err = a.cmdAddReview(ctx, os.Args[2:])
	case "my-reviews":
		err = a.cmdMyReviews(ctx)
	case "review":
		err = a.cmdReview(ctx, os.Args[2:])
	case "trending":
		err = a.cmdTrending(ctx)
	case "search":
		err = a.cmdSearch(ctx, os.Args[2:])
	case "watchlist":
		err = a.cmdWatchlist(ctx, os.Args[2:])
	case "nav":
		err = a.cmdNav()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
}

func joinKeys(keys []catalog.SortKey) string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return strings.Join(out, "|")
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: chill-gamer <command> [flags]

commands:
  games       list games with filters and sorting (%s)
  game        show one game with its reviews
  reviews     list reviews with filters and sorting (%s)
  add-review  publish a review as the current user
  my-reviews  list the current user's reviews
  review      show|edit|delete <review-id>
  trending    show the highest rated reviews
  search      search reviews (falls back to local filtering)
  watchlist   list | toggle <game-id> | toggle-review <review-id> | remove <item-id> | refresh
  nav         show navigation entries for the current role
`, joinKeys(catalog.GameSortKeys), joinKeys(catalog.ReviewSortKeys))
}

func (a *app) cmdGames(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("games", flag.ExitOnError)
	q := fs.String("q", "", "title/developer substring")
	genre := fs.String("genre", catalog.SentinelAll, "genre filter")
	platform := fs.String("platform", catalog.SentinelAll, "platform filter")
	sortKey := fs.String("sort", string(catalog.DefaultSort), "sort key: "+joinKeys(catalog.GameSortKeys))
	_ = fs.Parse(args)

	f := catalog.GameFilter{Search: *q, Genre: *genre, Platform: *platform}
	games, err := a.lib.GamesView(ctx, f, catalog.SortKey(*sortKey))
	if err != nil {
		return err
	}
	for _, g := range games {
		band := domain.BandOf(g.Rating)
		fmt.Printf("%-40s %4d  %.1f %-13s %s\n", g.Title, g.ReleaseYear, g.Rating, band, domain.FormatPrice(g.Price))
	}
	fmt.Printf("%d games\n", len(games))
	return nil
}

func (a *app) cmdGame(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: chill-gamer game <id>")
	}
	g, err := a.lib.GameByID(ctx, args[0])
	if errors.Is(err, domain.ErrNotFound) {
		fmt.Println(a.msg.Text("games.not_found", nil))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d) by %s\n", g.Title, g.ReleaseYear, g.Developer)
	fmt.Printf("rating %.1f (%s)  price %s\n", g.Rating, domain.BandOf(g.Rating), domain.FormatPrice(g.Price))

	linked, err := a.rev.ForGame(ctx, g.Title)
	if err != nil {
		return err
	}
	for _, r := range linked {
		fmt.Printf("  %.0f/5 by %s: %s\n", r.Rating, r.UserName, r.Description)
	}
	return nil
}

func (a *app) cmdReviews(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reviews", flag.ExitOnError)
	q := fs.String("q", "", "title/description substring")
	genre := fs.String("genre", catalog.SentinelAll, "genre filter")
	minRating := fs.Float64("min-rating", 0, "minimum rating")
	sortKey := fs.String("sort", string(catalog.DefaultSort), "sort key: "+joinKeys(catalog.ReviewSortKeys))
	_ = fs.Parse(args)

	f := catalog.ReviewFilter{Search: *q, Genre: *genre, MinRating: *minRating}
	revs, err := a.lib.ReviewsView(ctx, f, catalog.SortKey(*sortKey))
	if err != nil {
		return err
	}
	printReviews(revs)
	return nil
}

func (a *app) cmdAddReview(ctx context.Context, args []string) error {
	user, ok := a.sess.User()
	if !ok {
		fmt.Println(a.msg.Text("watchlist.auth_required", nil))
		return nil
	}
	fs := flag.NewFlagSet("add-review", flag.ExitOnError)
	title := fs.String("title", "", "game title")
	genre := fs.String("genre", "", "genre")
	rating := fs.Float64("rating", 0, "rating 0-5")
	year := fs.Int("year", 0, "release year")
	desc := fs.String("description", "", "review text")
	cover := fs.String("cover", "", "game cover URL")
	_ = fs.Parse(args)

	created, err := a.rev.Create(ctx, &domain.Review{
		GameTitle:   *title,
		GameCover:   *cover,
		Genre:       *genre,
		Rating:      *rating,
		Year:        *year,
		Description: *desc,
		UserEmail:   user.Email,
		UserName:    user.Name(),
		UserPhoto:   user.PhotoURL,
	})
	var verr *reviews.ValidationError
	if errors.As(err, &verr) {
		fmt.Println(a.msg.Text("reviews.validation", map[string]string{"Field": verr.Field}))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(a.msg.Text("reviews.created", map[string]string{"GameTitle": created.GameTitle}))
	return nil
}

func (a *app) cmdMyReviews(ctx context.Context) error {
	user, ok := a.sess.User()
	if !ok {
		fmt.Println(a.msg.Text("watchlist.auth_required", nil))
		return nil
	}
	revs, err := a.rev.ByUser(ctx, user.Email)
	if err != nil {
		return err
	}
	for _, r := range revs {
		fmt.Printf("%-40s %.0f/5 %-10s %s  [%s]\n", r.GameTitle, r.Rating, r.Genre, r.CreatedAt.Format("2006-01-02"), r.ID)
	}
	fmt.Printf("%d reviews\n", len(revs))
	return nil
}

func (a *app) cmdReview(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: chill-gamer review show|edit|delete <review-id>")
	}
	id := args[1]
	switch args[0] {
	case "show":
		r, err := a.rev.ByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Println(a.msg.Text("reviews.not_found", nil))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("%s (%d) %s\n", r.GameTitle, r.Year, r.Genre)
		fmt.Printf("%.0f/5 (%s) by %s on %s\n", r.Rating, domain.BandOf(r.Rating), r.UserName, r.CreatedAt.Format("2006-01-02"))
		fmt.Println(r.Description)
		return nil
	case "edit":
		current, err := a.rev.ByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Println(a.msg.Text("reviews.not_found", nil))
			return nil
		}
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("review edit", flag.ExitOnError)
		genre := fs.String("genre", current.Genre, "genre")
		rating := fs.Float64("rating", current.Rating, "rating 0-5")
		desc := fs.String("description", current.Description, "review text")
		_ = fs.Parse(args[2:])

		current.Genre = *genre
		current.Rating = *rating
		current.Description = *desc
		_, err = a.rev.Update(ctx, id, current)
		var verr *reviews.ValidationError
		if errors.As(err, &verr) {
			fmt.Println(a.msg.Text("reviews.validation", map[string]string{"Field": verr.Field}))
			return nil
		}
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Println(a.msg.Text("reviews.not_found", nil))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(a.msg.Text("reviews.updated", nil))
		return nil
	case "delete":
		err := a.rev.Delete(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Println(a.msg.Text("reviews.not_found", nil))
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(a.msg.Text("reviews.deleted", nil))
		return nil
	}
	return fmt.Errorf("unknown review subcommand %q", args[0])
}

func (a *app) cmdTrending(ctx context.Context) error {
	revs, err := a.rev.HighestRated(ctx)
	if err != nil {
		return err
	}
	printReviews(revs)
	return nil
}

func (a *app) cmdSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	q := fs.String("q", "", "title/description substring")
	genre := fs.String("genre", "", "genre filter")
	minRating := fs.Float64("min-rating", 0, "minimum rating")
	_ = fs.Parse(args)

	revs, source, err := a.search.Search(ctx, *q, *genre, *minRating)
	if err != nil {
		fmt.Println(a.msg.Text("search.failed", nil))
		return nil
	}
	if len(revs) == 0 {
		fmt.Println(a.msg.Text("search.empty", nil))
		return nil
	}
	printReviews(revs)
	fmt.Printf("(%d results via %s)\n", len(revs), source)
	return nil
}

func (a *app) cmdWatchlist(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: chill-gamer watchlist list|toggle|toggle-review|remove|refresh")
	}
	user, _ := a.sess.User()
	switch args[0] {
	case "list":
		return a.watchlistList(ctx, user)
	case "toggle":
		if len(args) < 2 {
			return fmt.Errorf("usage: chill-gamer watchlist toggle <game-id>")
		}
		g, err := a.lib.GameByID(ctx, args[1])
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Println(a.msg.Text("games.not_found", nil))
			return nil
		}
		if err != nil {
			return err
		}
		res := a.watch.Toggle(ctx, user, watchlist.SnapshotOfGame(*g))
		fmt.Println(res.Message)
		return nil
	case "toggle-review":
		if len(args) < 2 {
			return fmt.Errorf("usage: chill-gamer watchlist toggle-review <review-id>")
		}
		r, err := a.rev.ByID(ctx, args[1])
		if errors.Is(err, domain.ErrNotFound) {
			fmt.Println(a.msg.Text("reviews.not_found", nil))
			return nil
		}
		if err != nil {
			return err
		}
		res := a.watch.Toggle(ctx, user, watchlist.SnapshotOfReview(*r))
		fmt.Println(res.Message)
		return nil
	case "remove":
		if len(args) < 2 {
			return fmt.Errorf("usage: chill-gamer watchlist remove <item-id>")
		}
		if err := a.watch.Remove(ctx, user, args[1]); err != nil {
			fmt.Println(a.msg.Text("watchlist.remove_failed", nil))
			return nil
		}
		fmt.Println(a.msg.Text("watchlist.removed", nil))
		return nil
	case "refresh":
		if err := a.watch.Reset(ctx, user); err != nil {
			return err
		}
		return a.watchlistList(ctx, user)
	}
	return fmt.Errorf("unknown watchlist subcommand %q", args[0])
}

func (a *app) watchlistList(ctx context.Context, user domain.User) error {
	items, err := a.watch.Items(ctx, user)
	if errors.Is(err, domain.ErrAuthRequired) {
		fmt.Println(a.msg.Text("watchlist.auth_required", nil))
		return nil
	}
	if err != nil {
		return err
	}
	for _, it := range items {
		fmt.Printf("%-40s %.1f %-10s added %s  [%s]\n", it.GameTitle, it.Rating, it.Genre, it.AddedAt.Format("2006-01-02"), it.ID)
	}
	return nil
}

func (a *app) cmdNav() error {
	for _, e := range nav.For(a.sess.Role()) {
		fmt.Printf("%-16s %s\n", e.Route, e.Label)
	}
	return nil
}

func printReviews(revs []domain.Review) {
	for _, r := range revs {
		fmt.Printf("%-40s %.0f/5 %-10s %s by %s\n", r.GameTitle, r.Rating, r.Genre, r.CreatedAt.Format("2006-01-02"), r.UserName)
	}
	fmt.Printf("%d reviews\n", len(revs))
}
