package data

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	readability "github.com/go-shiori/go-readability"

	"github.com/spectralens/commonground/internal/biz"
)

const (
	fetchTimeout    = 30 * time.Second
	maxExcerptChars = 600
)

type articleFetcher struct {
	log *log.Helper
}

func NewArticleFetcher(logger log.Logger) biz.ArticleFetcher {
	return &articleFetcher{log: log.NewHelper(logger)}
}

// Excerpt fetches a URL and returns the leading readable text of the
// page, bounded so a whole article never lands in a topic summary.
func (f *articleFetcher) Excerpt(ctx context.Context, url string) (string, error) {
	article, err := readability.FromURL(url, fetchTimeout)
	if err != nil {
		return "", err
	}
	text := strings.Join(strings.Fields(article.TextContent), " ")
	if len(text) > maxExcerptChars {
		cut := strings.LastIndex(text[:maxExcerptChars], " ")
		if cut <= 0 {
			cut = maxExcerptChars
		}
		text = text[:cut] + "..."
	}
	return text, nil
}
