package api

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Dashboard bundles. Each home screen needs two independent fetches; they
// run concurrently and the bundle fails if either leg fails.

// EmployeeDashboard is everything the employee home renders.
type EmployeeDashboard struct {
	Stats       EmployeeDashboardStats
	RecentLeave []LeaveRequest
}

// HRDashboard is everything the HR home renders.
type HRDashboard struct {
	Stats    HRDashboardStats
	Activity []Activity
}

// EmployeeDashboard fetches stats and recent leave concurrently.
func (c *Client) EmployeeDashboard(ctx context.Context) (*EmployeeDashboard, error) {
	var out EmployeeDashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := c.DashboardStats(ctx)
		if err != nil {
			return err
		}
		out.Stats = *stats
		return nil
	})
	g.Go(func() error {
		leave, err := c.LeaveRequests(ctx, LeaveListOptions{Limit: 5})
		if err != nil {
			return err
		}
		out.RecentLeave = leave
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// HRDashboard fetches HR stats and the activity feed concurrently.
func (c *Client) HRDashboard(ctx context.Context) (*HRDashboard, error) {
	var out HRDashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := c.HRStats(ctx)
		if err != nil {
			return err
		}
		out.Stats = *stats
		return nil
	})
	g.Go(func() error {
		items, err := c.RecentActivity(ctx)
		if err != nil {
			return err
		}
		out.Activity = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
