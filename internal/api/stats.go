// ABOUTME: Dashboard statistics against /admin/dashboard/stats
// ABOUTME: Aggregate counters for the overview screen

package api

import (
	"context"
	"net/http"
)

// GetDashboardStats fetches the aggregate platform counters
func (c *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var env struct {
		Data DashboardStats `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard/stats", nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
