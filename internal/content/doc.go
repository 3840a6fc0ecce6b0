// Package content holds the article and page model built from reader
// documents, plus the helpers that derive slugs, URLs and summaries.
package content
