package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core/listing"
)

// pageFlags are the flags shared by the list commands.
type pageFlags struct {
	search   string
	page     int
	pageSize int
}

func (pf *pageFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&pf.search, "search", "", "Search text.")
	fs.IntVar(&pf.page, "page", 1, "Page number.")
	fs.IntVar(&pf.pageSize, "page-size", 0, fmt.Sprintf("Page size, one of %v.", listing.DefaultPageSizes))
}

// loadPage drives list to the page described by pf and returns its state.
func loadPage[T any](list *listing.Controller[T], pf pageFlags, filters map[string]string) (listing.State[T], error) {
	if pf.pageSize != 0 {
		if err := list.SetPageSize(pf.pageSize); err != nil {
			return listing.State[T]{}, err
		}
	}
	if len(filters) > 0 {
		list.SetFilters(filters)
	}
	if pf.search != "" {
		list.SetSearch(pf.search)
		list.Flush()
	}
	list.Start()
	list.Wait()
	if pf.page > 1 {
		list.SetPage(pf.page)
		list.Wait()
	}

	st := list.State()
	if st.Status == listing.StatusFailed {
		return st, errors.Wrap(st.Err, "loading list")
	}
	return st, nil
}

func printFooter[T any](out io.Writer, st listing.State[T]) {
	if st.Status == listing.StatusEmpty {
		fmt.Fprintln(out, "No results.")
		return
	}
	fmt.Fprintf(out, "Page %d of %d (%d results)\n", st.Query.Page, st.PageCount, st.Result.TotalCount)
}

// checkChoice reports whether value is empty or one of choices.
func checkChoice(fs *flag.FlagSet, name, value string, choices []string) error {
	if value == "" {
		return nil
	}
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	fmt.Fprintf(fs.Output(), "invalid value %q for -%s: one of %v\n", value, name, choices)
	fs.Usage()
	return errHelp
}
