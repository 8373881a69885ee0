package permission

import (
	"sort"
	"time"
)

// Rule identifica qué paso de la resolución produjo la decisión.
type Rule string

// Pasos en orden de precedencia.
const (
	RuleUserDeny        Rule = "USER_DENY"
	RuleUserAllow       Rule = "USER_ALLOW"
	RuleStorePermission Rule = "STORE_PERMISSION"
	RuleStoreRole       Rule = "STORE_ROLE"
	RuleGlobalRole      Rule = "GLOBAL_ROLE"
	RuleDefaultDeny     Rule = "DEFAULT_DENY"
)

// Request acción a evaluar. Resource y StoreID vacíos restringen la coincidencia a permisos globales.
type Request struct {
	Action   string
	Resource string
	StoreID  string
	Context  RequestContext // ResourceID/At opcionales; StoreID se completa desde Request
}

// Decision resultado de Resolve.
type Decision struct {
	Allowed  bool
	Rule     Rule
	SourceID string // id del UserPermission o StoreUserPermission; rol en STORE_ROLE/GLOBAL_ROLE
}

// Resolve aplica, en orden: negación explícita, concesión explícita, lista de la tienda,
// rol de tienda, roles globales y negación por defecto.
//
// Una negación explícita activa gana sobre cualquier concesión, sea global o de tienda.
// Las acciones de plataforma ignoran StoreID: ninguna fuente ligada a una tienda las concede.
func Resolve(s Snapshot, req Request, now time.Time) Decision {
	if !IsStoreScoped(req.Action) {
		req.StoreID = ""
	}
	ctx := req.Context
	if ctx.At.IsZero() {
		ctx.At = now
	}
	ctx.StoreID = req.StoreID

	for _, p := range s.UserPermissions {
		if !p.Grant && grantMatches(p, req, ctx, now) {
			return Decision{Allowed: false, Rule: RuleUserDeny, SourceID: p.ID}
		}
	}
	for _, p := range s.UserPermissions {
		if p.Grant && grantMatches(p, req, ctx, now) {
			return Decision{Allowed: true, Rule: RuleUserAllow, SourceID: p.ID}
		}
	}

	if req.StoreID != "" {
		if a, ok := assignmentFor(s.StoreAssignments, req.StoreID, ctx, now); ok {
			if a.HasPermission(req.Action) {
				return Decision{Allowed: true, Rule: RuleStorePermission, SourceID: a.ID}
			}
			if StoreRoleAllows(a.StoreRole, req.Action) {
				return Decision{Allowed: true, Rule: RuleStoreRole, SourceID: string(a.StoreRole)}
			}
		}
	}

	for _, role := range s.GlobalRoles {
		if GlobalRoleAllows(role, req.Action) {
			return Decision{Allowed: true, Rule: RuleGlobalRole, SourceID: role}
		}
	}
	return Decision{Allowed: false, Rule: RuleDefaultDeny}
}

func grantMatches(p UserPermission, req Request, ctx RequestContext, now time.Time) bool {
	if !p.Active(now) {
		return false
	}
	if p.Action != req.Action && p.Action != Wildcard {
		return false
	}
	if p.Resource != nil && (req.Resource == "" || *p.Resource != req.Resource) {
		return false
	}
	if p.StoreID != nil && (req.StoreID == "" || *p.StoreID != req.StoreID) {
		return false
	}
	return p.Conditions.Matches(ctx)
}

// assignmentFor elige la asignación activa de la tienda; con duplicados gana el rol de mayor rango.
func assignmentFor(list []StoreUserPermission, storeID string, ctx RequestContext, now time.Time) (StoreUserPermission, bool) {
	var (
		best  StoreUserPermission
		found bool
	)
	for _, a := range list {
		if a.StoreID != storeID || !a.Active(now) || !a.Conditions.Matches(ctx) {
			continue
		}
		if !found || a.StoreRole.Rank() > best.StoreRole.Rank() {
			best, found = a, true
		}
	}
	return best, found
}

// EffectiveEntry una fuente de permiso aplicable al usuario, con su procedencia.
type EffectiveEntry struct {
	Action      string
	Resource    *string
	StoreID     *string
	Granted     bool
	Source      Rule
	SourceID    string
	Conditional bool
	ExpiresAt   *time.Time
	Reason      *string
}

// Effective conjunto efectivo de permisos del usuario.
type Effective struct {
	Entries []EffectiveEntry
	Allowed []string // acciones del catálogo que resuelven a permitido sin recurso concreto
}

// ComputeEffective une permisos personalizados globales, los de storeID (si se indica),
// la asignación de la tienda y los permisos implícitos de los roles. Ignora todo lo vencido.
func ComputeEffective(s Snapshot, storeID string, now time.Time) Effective {
	var entries []EffectiveEntry

	for _, p := range s.UserPermissions {
		if !p.Active(now) {
			continue
		}
		if p.StoreID != nil && (storeID == "" || *p.StoreID != storeID) {
			continue
		}
		source := RuleUserAllow
		if !p.Grant {
			source = RuleUserDeny
		}
		entries = append(entries, EffectiveEntry{
			Action:      p.Action,
			Resource:    p.Resource,
			StoreID:     p.StoreID,
			Granted:     p.Grant,
			Source:      source,
			SourceID:    p.ID,
			Conditional: len(p.Conditions) > 0,
			ExpiresAt:   p.ExpiresAt,
			Reason:      p.Reason,
		})
	}

	if storeID != "" {
		for _, a := range s.StoreAssignments {
			if a.StoreID != storeID || !a.Active(now) {
				continue
			}
			sid := a.StoreID
			for _, action := range a.Permissions {
				entries = append(entries, EffectiveEntry{
					Action: action, StoreID: &sid, Granted: true,
					Source: RuleStorePermission, SourceID: a.ID,
					Conditional: len(a.Conditions) > 0, ExpiresAt: a.ExpiresAt,
				})
			}
			for _, action := range StoreRoleActions(a.StoreRole) {
				entries = append(entries, EffectiveEntry{
					Action: action, StoreID: &sid, Granted: true,
					Source: RuleStoreRole, SourceID: string(a.StoreRole),
					Conditional: len(a.Conditions) > 0, ExpiresAt: a.ExpiresAt,
				})
			}
		}
	}

	for _, role := range s.GlobalRoles {
		for _, action := range GlobalRoleActions(role) {
			entries = append(entries, EffectiveEntry{
				Action: action, Granted: true, Source: RuleGlobalRole, SourceID: role,
			})
		}
	}

	var allowed []string
	for _, action := range Catalogue() {
		if Resolve(s, Request{Action: action, StoreID: storeID}, now).Allowed {
			allowed = append(allowed, action)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Action != entries[j].Action {
			return entries[i].Action < entries[j].Action
		}
		return precedence(entries[i].Source) < precedence(entries[j].Source)
	})
	return Effective{Entries: entries, Allowed: allowed}
}

func precedence(r Rule) int {
	switch r {
	case RuleUserDeny:
		return 0
	case RuleUserAllow:
		return 1
	case RuleStorePermission:
		return 2
	case RuleStoreRole:
		return 3
	case RuleGlobalRole:
		return 4
	}
	return 5
}
