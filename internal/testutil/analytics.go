package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
)

type analyticsRepo struct{ s *Store }

func (r *analyticsRepo) GetTotals(_ context.Context, companyID string) (repository.Totals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var t repository.Totals
	for _, e := range r.s.employees {
		if e.CompanyID == companyID && e.IsActive() {
			t.ActiveEmployees++
		}
	}
	for _, c := range r.s.customers {
		if c.CompanyID == companyID && c.Status == entity.CustomerStatusActive {
			t.ActiveCustomers++
		}
	}
	return t, nil
}

func (r *analyticsRepo) GetHRStats(_ context.Context, companyID string, since time.Time) (repository.HRStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var st repository.HRStats
	for _, j := range r.s.jobs {
		if j.CompanyID == companyID && j.Status == entity.JobStatusOpen {
			st.OpenPositions++
		}
	}
	for _, e := range r.s.employees {
		if e.CompanyID != companyID {
			continue
		}
		st.TotalEmployees++
		if !e.HireDate.Before(since) {
			st.RecentHires++
		}
	}
	for _, l := range r.s.leaves {
		if l.CompanyID == companyID && l.Status == entity.LeavePending {
			st.PendingLeaves++
		}
	}
	return st, nil
}

func (r *analyticsRepo) GetCRMStats(_ context.Context, companyID string, now time.Time) (repository.CRMStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := repository.CRMStats{PipelineValue: decimal.Zero, WonValue: decimal.Zero}
	for _, l := range r.s.leads {
		if l.CompanyID != companyID {
			continue
		}
		if l.IsOpen() {
			st.ActiveLeads++
		}
		switch l.Stage {
		case entity.LeadStageQualified, entity.LeadStageProposal, entity.LeadStageNegotiation:
			st.PipelineValue = st.PipelineValue.Add(l.EstimatedValue)
		case entity.LeadStageWon:
			st.WonValue = st.WonValue.Add(l.EstimatedValue)
		}
	}
	for _, t := range r.s.tickets {
		if t.CompanyID != companyID || t.IsClosedForSLA() {
			continue
		}
		st.OpenTickets++
		if t.IsOverdue(now) {
			st.OverdueTickets++
		}
	}
	return st, nil
}

func sortedCounts(m map[string]int) []repository.CountByKey {
	out := make([]repository.CountByKey, 0, len(m))
	for k, v := range m {
		out = append(out, repository.CountByKey{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (r *analyticsRepo) EmployeesByDepartment(_ context.Context, companyID string) ([]repository.CountByKey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := map[string]int{}
	for _, e := range r.s.employees {
		if e.CompanyID == companyID && e.IsActive() {
			m[e.Department]++
		}
	}
	out := sortedCounts(m)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

func (r *analyticsRepo) LeadsByStage(_ context.Context, companyID string) ([]repository.ValueByKey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := map[string]*repository.ValueByKey{}
	for _, l := range r.s.leads {
		if l.CompanyID != companyID {
			continue
		}
		v := m[l.Stage]
		if v == nil {
			v = &repository.ValueByKey{Key: l.Stage, Value: decimal.Zero}
			m[l.Stage] = v
		}
		v.Count++
		v.Value = v.Value.Add(l.EstimatedValue)
	}
	out := make([]repository.ValueByKey, 0, len(m))
	for _, v := range m {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *analyticsRepo) TicketsByStatus(_ context.Context, companyID string) ([]repository.CountByKey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := map[string]int{}
	for _, t := range r.s.tickets {
		if t.CompanyID == companyID {
			m[t.Status]++
		}
	}
	return sortedCounts(m), nil
}

func (r *analyticsRepo) TicketsByPriority(_ context.Context, companyID string) ([]repository.CountByKey, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m := map[string]int{}
	for _, t := range r.s.tickets {
		if t.CompanyID == companyID && !t.IsClosedForSLA() {
			m[t.Priority]++
		}
	}
	return sortedCounts(m), nil
}

func (r *analyticsRepo) EmployeeSummary(_ context.Context, companyID string, since time.Time) (repository.EmployeeSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var s repository.EmployeeSummary
	dept, kind, status := map[string]int{}, map[string]int{}, map[string]int{}
	for _, e := range r.s.employees {
		if e.CompanyID != companyID {
			continue
		}
		s.Total++
		if !e.CreatedAt.Before(since) {
			s.RecentHires++
		}
		dept[orLabel(e.Department, "Unassigned")]++
		kind[e.EmploymentType]++
		status[e.Status]++
	}
	s.ByDepartment = sortedCounts(dept)
	sort.SliceStable(s.ByDepartment, func(i, j int) bool { return s.ByDepartment[i].Count > s.ByDepartment[j].Count })
	s.ByEmploymentType, s.ByStatus = sortedCounts(kind), sortedCounts(status)
	return s, nil
}

func (r *analyticsRepo) CustomerSummary(_ context.Context, companyID string, since time.Time) (repository.CustomerSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var s repository.CustomerSummary
	kind, industry, prio, status := map[string]int{}, map[string]int{}, map[string]int{}, map[string]int{}
	for _, c := range r.s.customers {
		if c.CompanyID != companyID {
			continue
		}
		s.Total++
		if !c.CreatedAt.Before(since) {
			s.RecentCustomers++
		}
		kind[c.CustomerType]++
		industry[orLabel(c.Industry, "Unknown")]++
		prio[c.Priority]++
		status[c.Status]++
	}
	s.ByType, s.ByPriority, s.ByStatus = sortedCounts(kind), sortedCounts(prio), sortedCounts(status)
	s.ByIndustry = sortedCounts(industry)
	sort.SliceStable(s.ByIndustry, func(i, j int) bool { return s.ByIndustry[i].Count > s.ByIndustry[j].Count })
	return s, nil
}

func orLabel(v, empty string) string {
	if v == "" {
		return empty
	}
	return v
}

func (r *analyticsRepo) Search(_ context.Context, companyID, q string, kinds []string, limitPerKind int) ([]repository.SearchHit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var hits []repository.SearchHit
	for _, kind := range kinds {
		var found []repository.SearchHit
		switch kind {
		case "employee":
			for _, e := range r.s.employees {
				if e.CompanyID == companyID && contains(e.FirstName+" "+e.LastName+" "+e.Email+" "+e.Code, q) {
					found = append(found, repository.SearchHit{Kind: kind, ID: e.ID, Code: e.Code, Title: e.FullName(), Extra: e.Department})
				}
			}
		case "customer":
			for _, c := range r.s.customers {
				if c.CompanyID == companyID && contains(c.CompanyName+" "+c.FirstName+" "+c.LastName+" "+c.Email+" "+c.Code, q) {
					found = append(found, repository.SearchHit{Kind: kind, ID: c.ID, Code: c.Code, Title: c.DisplayName(), Extra: c.Email})
				}
			}
		case "lead":
			for _, l := range r.s.leads {
				if l.CompanyID == companyID && contains(l.Title+" "+l.ContactName+" "+l.Code, q) {
					found = append(found, repository.SearchHit{Kind: kind, ID: l.ID, Code: l.Code, Title: l.Title, Extra: l.Stage})
				}
			}
		case "ticket":
			for _, t := range r.s.tickets {
				if t.CompanyID == companyID && contains(t.Subject+" "+t.Code, q) {
					found = append(found, repository.SearchHit{Kind: kind, ID: t.ID, Code: t.Code, Title: t.Subject, Extra: t.Status})
				}
			}
		case "job":
			for _, j := range r.s.jobs {
				if j.CompanyID == companyID && contains(j.Title+" "+j.Department+" "+j.Code, q) {
					found = append(found, repository.SearchHit{Kind: kind, ID: j.ID, Code: j.Code, Title: j.Title, Extra: j.Department})
				}
			}
		}
		sort.Slice(found, func(i, j int) bool { return found[i].Title < found[j].Title })
		if len(found) > limitPerKind {
			found = found[:limitPerKind]
		}
		hits = append(hits, found...)
	}
	return hits, nil
}
