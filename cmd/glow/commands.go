package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"glow/internal/client/screen"
	"glow/internal/domain/model"
)

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "home":
		return a.home(ctx)
	case "catalog":
		return a.catalogCmd(ctx, args)
	case "search":
		return a.search(ctx, args)
	case "history":
		return a.historyCmd(ctx, args)
	case "product":
		return a.product(ctx, args)
	case "review":
		return a.review(ctx, args)
	case "fav":
		return a.fav(ctx, args)
	case "profile":
		return a.profile()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) home(ctx context.Context) error {
	v := screen.NewHomeView(ctx, a.catalog, a.log)
	defer v.Close()
	if err := v.Load(ctx); err != nil {
		return err
	}
	st := v.State()

	a.printCategories(st.Categories.Items)
	a.printSection("New", st.Newest)
	a.printSection("Best", st.Best)
	a.printSection("Recommended", st.Recommended)
	return nil
}

func (a *app) catalogCmd(ctx context.Context, args []string) error {
	var initial model.ID
	if len(args) > 0 {
		initial = model.ParseID(args[0])
	}
	v := screen.NewCatalogView(ctx, a.catalog, a.log, initial)
	defer v.Close()
	if err := v.Load(ctx); err != nil {
		return err
	}
	st := v.State()

	a.printCategories(st.Categories)
	if st.Failed {
		fmt.Fprintln(a.out, "(some data could not be loaded)")
	}
	fmt.Fprintf(a.out, "%d of %d products\n", len(st.Products), st.Total)
	a.printProducts(st.Products)
	return nil
}

func (a *app) search(ctx context.Context, args []string) error {
	q := strings.Join(args, " ")
	if strings.TrimSpace(q) == "" {
		return errors.New("search: query required")
	}
	v := screen.NewSearchView(ctx, a.catalog, a.history, a.log)
	defer v.Close()
	if err := v.Submit(ctx, q); err != nil {
		return err
	}
	st := v.State()

	if st.Failed {
		fmt.Fprintln(a.out, "(search unavailable)")
	}
	fmt.Fprintf(a.out, "%d results for %q\n", len(st.Results), st.Query)
	a.printProducts(st.Results)
	return nil
}

func (a *app) historyCmd(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "clear" {
		return a.history.Clear(ctx)
	}
	for _, q := range a.history.Entries() {
		fmt.Fprintln(a.out, q)
	}
	return nil
}

func (a *app) product(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("product: id required")
	}
	v := screen.NewProductView(ctx, a.catalog, a.favs, a.log, model.ParseID(args[0]))
	defer v.Close()
	if err := v.Load(ctx); err != nil {
		return err
	}
	st := v.State()
	if !st.Found {
		if st.Failed {
			return errors.New("product unavailable")
		}
		return fmt.Errorf("product %s not found", args[0])
	}

	p := st.Product
	fmt.Fprintf(a.out, "%s  ¥%d  %s  [%s]\n", p.Name, p.Price, formatRating(p.Rating), st.Favorite)
	if p.Description != nil {
		fmt.Fprintln(a.out, *p.Description)
	}
	if len(p.Ingredients) > 0 {
		fmt.Fprintln(a.out, "ingredients:", strings.Join(p.Ingredients, ", "))
	}
	fmt.Fprintf(a.out, "%d reviews\n", len(st.Reviews.Items))
	for _, r := range st.Reviews.Items {
		fmt.Fprintf(a.out, "  %s %s\n", strings.Repeat("*", r.Rating), r.Review)
	}
	return nil
}

func (a *app) review(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("review: id, rating and text required")
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("review: rating must be a number: %w", err)
	}
	v := screen.NewProductView(ctx, a.catalog, a.favs, a.log, model.ParseID(args[0]))
	defer v.Close()
	if err := v.SubmitReview(ctx, rating, strings.Join(args[2:], " ")); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d reviews\n", len(v.State().Reviews.Items))
	return nil
}

func (a *app) fav(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "list":
		v := screen.NewFavoritesView(ctx, a.catalog, a.favs, a.log)
		defer v.Close()
		if err := v.Load(ctx); err != nil {
			return err
		}
		a.printProducts(v.State().Products)
		return nil
	case "add", "remove":
		if len(args) < 2 {
			return fmt.Errorf("fav %s: id required", sub)
		}
		id := model.ParseID(args[1])
		if sub == "add" {
			return a.favs.Add(ctx, id)
		}
		return a.favs.Remove(ctx, id)
	default:
		return fmt.Errorf("fav: unknown subcommand %q", sub)
	}
}

func (a *app) profile() error {
	st := screen.NewProfileView(a.favs, a.history).State()
	fmt.Fprintf(a.out, "user: %s\nfavorites: %d\nrecent searches: %d\n", st.User, st.Favorites, len(st.History))
	return nil
}

func (a *app) printCategories(cats []model.Category) {
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, fmt.Sprintf("%s:%s", c.ID, c.Name))
	}
	fmt.Fprintln(a.out, "categories:", strings.Join(names, "  "))
}

func (a *app) printSection(title string, s screen.Section[model.Product]) {
	fmt.Fprintf(a.out, "\n== %s ==\n", title)
	if s.Failed {
		fmt.Fprintln(a.out, "(unavailable)")
		return
	}
	a.printProducts(s.Items)
}

func (a *app) printProducts(ps []model.Product) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, p := range ps {
		mark := " "
		if a.favs.Has(p.ID) {
			mark = "♥"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t¥%d\t%s\n", mark, p.ID, p.Name, p.Price, formatRating(p.Rating))
	}
	_ = w.Flush()
}

func formatRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}
