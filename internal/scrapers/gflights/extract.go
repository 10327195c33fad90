package gflights

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"flightscout/internal/flights"
	"flightscout/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

const (
	airlineSelector   = `.Ir0Voe > .sSHqwe.tPgKwe.ogfYpf`
	timeSelector      = `.zxVSec span[role='text']`
	dateLabelSelector = `.zxVSec.YMlIz.tPgKwe.ogfYpf .mv1WYe`
	durationSelector  = `.gvkrdb.AdWm1c.tPgKwe.ogfYpf`
	stopsSelector     = `.EfT7Ae.AdWm1c.tPgKwe span.ogfYpf`
	priceSelector     = `.YMlIz.FpEdX span`
)

// Extract reads the result cards out of a page snapshot. Only the first
// limit cards are read when limit > 0. Cards missing the airline, either
// time or the price are dropped and counted as invalid, a card whose
// data-id was already seen is skipped.
func Extract(ctx context.Context, html string, limit int) (cards []flights.RawCard, invalid int, err error) {
	_, span := tracer.Start(ctx, "gflights:Extract")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, 0, fmt.Errorf("parse snapshot: %w", err)
	}

	items := doc.Find(itemSelector)
	if limit > 0 && items.Length() > limit {
		items = items.Slice(0, limit)
	}

	seen := map[string]struct{}{}
	items.Each(func(_ int, item *goquery.Selection) {
		card := extractCard(item)
		if card.ID != "" {
			if _, ok := seen[card.ID]; ok {
				return
			}
			seen[card.ID] = struct{}{}
		}
		if !complete(card) {
			invalid++
			return
		}
		cards = append(cards, card)
	})

	span.SetAttributes(
		attribute.Int("items", items.Length()),
		attribute.Int("cards", len(cards)),
		attribute.Int("invalid", invalid),
	)
	return cards, invalid, nil
}

func extractCard(item *goquery.Selection) flights.RawCard {
	times := item.Find(timeSelector)
	id, _ := item.Attr("data-id")
	return flights.RawCard{
		ID:        id,
		Airline:   extractAirline(item),
		Departure: htmlutil.Text(times.Eq(0)),
		Arrival:   htmlutil.Text(times.Eq(1)),
		DateLabel: htmlutil.Attr(item.Find(dateLabelSelector), "aria-label"),
		Duration:  htmlutil.Text(item.Find(durationSelector)),
		Stops:     htmlutil.Text(item.Find(stopsSelector)),
		Price:     htmlutil.Text(item.Find(priceSelector)),
	}
}

// extractAirline joins the distinct carrier names of a card, a codeshare
// renders as "Garuda Indonesia + KLM".
func extractAirline(item *goquery.Selection) string {
	block := item.Find(airlineSelector).First()
	if block.Length() == 0 {
		return ""
	}
	var names []string
	for _, name := range htmlutil.Texts(block.Find("span")) {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return htmlutil.Text(block)
	}
	return strings.Join(names, " + ")
}

func complete(card flights.RawCard) bool {
	return card.Airline != "" &&
		card.Departure != "" &&
		card.Arrival != "" &&
		card.Price != ""
}
