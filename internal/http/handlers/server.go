package handlers

import (
	"github.com/rogerio-castellano/ledger-search/internal/search"
)

var searchService *search.Service

func SetSearchService(s *search.Service) {
	searchService = s
}
