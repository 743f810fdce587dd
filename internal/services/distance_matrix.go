package services

import (
	"context"
	"errors"
	"fmt"
	"service-area-api/internal/domain"
	"service-area-api/internal/ports"
	"sync"
)

const defaultMatrixWorkers = 5

type matrixRow struct {
	index   int
	results []ports.DistanceResult
	err     error
}

// Build the pairwise distance matrix between service areas.
//
// Rows are computed concurrently with at most workers in flight (default 5).
// Only the upper triangle is requested; the lower triangle is mirrored since
// great-circle distance is symmetric. The first failure cancels the rest.
func BuildDistanceMatrix(
	ctx context.Context,
	areas []*domain.ServiceArea,
	provider ports.DistanceProvider,
	workers int,
) (*domain.DistanceMatrix, error) {
	if workers <= 0 {
		workers = defaultMatrixWorkers
	}

	n := len(areas)
	matrix := &domain.DistanceMatrix{
		Names:      make([]string, n),
		DistanceKm: make([][]float64, n),
	}
	for i, a := range areas {
		if a == nil {
			return nil, fmt.Errorf("build distance matrix: nil service area at index %d", i)
		}
		matrix.Names[i] = a.Name
		matrix.DistanceKm[i] = make([]float64, n)
	}

	if n < 2 {
		return matrix, nil
	}

	mp, hasMatrix := provider.(ports.DistanceMatrixProvider)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, workers)
	rowsCh := make(chan matrixRow, n-1)
	var wg sync.WaitGroup

	for i := 0; i < n-1; i++ {
		targets := make([]domain.Coordinates, 0, n-i-1)
		for _, a := range areas[i+1:] {
			targets = append(targets, a.Location)
		}

		wg.Add(1)
		go func(i int, origin *domain.ServiceArea) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if hasMatrix {
				res, err := mp.GetDistances(ctx, origin.Location, targets)
				if err != nil {
					rowsCh <- matrixRow{index: i, err: fmt.Errorf("build distance matrix: from %q: %w", origin.Name, err)}
					cancel()
					return
				}
				rowsCh <- matrixRow{index: i, results: res}
				return
			}

			res := make([]ports.DistanceResult, 0, len(targets))
			for k, t := range targets {
				r, err := provider.GetDistance(ctx, origin.Location, t)
				if err != nil {
					rowsCh <- matrixRow{index: i, err: fmt.Errorf("build distance matrix: from %q to %q: %w", origin.Name, areas[i+1+k].Name, err)}
					cancel()
					return
				}
				res = append(res, r)
			}
			rowsCh <- matrixRow{index: i, results: res}
		}(i, areas[i])
	}

	wg.Wait()
	close(rowsCh)

	var firstErr error
	for row := range rowsCh {
		if row.err != nil {
			// Keep the root cause rather than a sibling's cancellation.
			if firstErr == nil || (errors.Is(firstErr, context.Canceled) && !errors.Is(row.err, context.Canceled)) {
				firstErr = row.err
			}
			continue
		}
		if len(row.results) != n-row.index-1 {
			return nil, fmt.Errorf("build distance matrix: row %q: got %d distances, want %d", areas[row.index].Name, len(row.results), n-row.index-1)
		}
		for k, r := range row.results {
			j := row.index + 1 + k
			matrix.DistanceKm[row.index][j] = r.DistanceKm
			matrix.DistanceKm[j][row.index] = r.DistanceKm
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return matrix, nil
}
