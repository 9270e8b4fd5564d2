// Package permission computes role-based visibility and editability for
// cards and pipelines. Every predicate is pure: no store access, no side
// effects. A nil user always denies; there is no default-allow path.
package permission

import "github.com/xavierca1/dental-crm/internal/entity"

func IsAdmin(u *entity.User) bool {
	return u != nil && u.Role == entity.RoleAdmin
}

func IsManager(u *entity.User) bool {
	return u != nil && u.Role == entity.RoleManager
}

// CanViewPipeline reports whether the user may open a pipeline's board or
// table view. Admins see every pipeline; everyone else needs an explicit
// entitlement.
func CanViewPipeline(u *entity.User, pipelineID string) bool {
	if u == nil {
		return false
	}
	switch u.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleManager, entity.RoleUser:
		return u.HasPipeline(pipelineID)
	default:
		return false
	}
}

// CanViewCard gates single-card reads. Managers and admins see any card;
// plain users only their own, even inside an entitled pipeline.
func CanViewCard(u *entity.User, c *entity.Card) bool {
	if u == nil || c == nil {
		return false
	}
	switch u.Role {
	case entity.RoleAdmin, entity.RoleManager:
		return true
	case entity.RoleUser:
		return c.Responsible == u.ID
	default:
		return false
	}
}

func CanEditCard(u *entity.User, c *entity.Card) bool {
	if u == nil || c == nil {
		return false
	}
	switch u.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleManager:
		return u.HasPipeline(c.Pipeline)
	case entity.RoleUser:
		return c.Responsible == u.ID
	default:
		return false
	}
}

func CanDeleteCard(u *entity.User, c *entity.Card) bool {
	return IsAdmin(u) && c != nil
}

func CanCreateUser(u *entity.User) bool {
	return IsAdmin(u)
}

func CanEditUser(u *entity.User, targetID string) bool {
	if IsAdmin(u) {
		return true
	}
	return u != nil && u.ID == targetID
}

func CanViewAllUsers(u *entity.User) bool {
	return IsAdmin(u) || IsManager(u)
}

func CanAssignCards(u *entity.User) bool {
	return IsAdmin(u) || IsManager(u)
}

func CanAccessReports(u *entity.User) bool {
	return IsAdmin(u) || IsManager(u)
}

func CanConfigureSystem(u *entity.User) bool {
	return IsAdmin(u)
}

// FilterCards narrows a card list to what the user may see. Admins and
// managers get the full list back; users only cards they are responsible
// for. Every view (kanban, table, search) goes through this one function so
// no code path can leak a card.
func FilterCards(u *entity.User, cards []entity.Card) []entity.Card {
	if u == nil {
		return nil
	}
	switch u.Role {
	case entity.RoleAdmin, entity.RoleManager:
		out := make([]entity.Card, len(cards))
		copy(out, cards)
		return out
	case entity.RoleUser:
		out := make([]entity.Card, 0)
		for _, c := range cards {
			if c.Responsible == u.ID {
				out = append(out, c)
			}
		}
		return out
	default:
		return nil
	}
}

// AccessiblePipelines lists the pipeline ids the user may open, in registry
// order. For admins that is every registered pipeline.
func AccessiblePipelines(u *entity.User, all []entity.Pipeline) []string {
	if u == nil {
		return nil
	}
	out := make([]string, 0, len(all))
	for _, p := range all {
		if CanViewPipeline(u, p.ID) {
			out = append(out, p.ID)
		}
	}
	return out
}
