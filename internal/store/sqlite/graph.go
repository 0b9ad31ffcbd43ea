package sqlite

import (
	"context"

	"supplierwatch/internal/domain"
	"supplierwatch/internal/repository"
)

// RelatedSuppliersSharingPartners implements repository.RuleDataRepository,
// feeding the TENDER_ROTATION detector: for every partner of the subject
// supplier, every other supplier that partner also belongs to, plus that
// other supplier's contracts.
func (s *Store) RelatedSuppliersSharingPartners(ctx context.Context, id domain.CompanyId) ([]repository.RelatedSupplierContracts, error) {
	key, err := s.supplierKeyFor(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.person_hash, other.company_id, other.supplier_key
		FROM bridge_supplier_partner b
		JOIN dim_partner p ON p.partner_key = b.partner_key
		JOIN bridge_supplier_partner b2 ON b2.partner_key = p.partner_key AND b2.supplier_key != ?
		JOIN dim_supplier other ON other.supplier_key = b2.supplier_key
		WHERE b.supplier_key = ?`, key, key)
	if err != nil {
		return nil, wrapStoreErr("query related suppliers", err)
	}
	defer rows.Close()

	type pair struct {
		partnerHash string
		otherKey    int64
	}
	var pairs []pair
	others := make(map[int64]domain.CompanyId)
	for rows.Next() {
		var partnerHash, otherCompanyID string
		var otherKey int64
		if err := rows.Scan(&partnerHash, &otherCompanyID, &otherKey); err != nil {
			return nil, wrapStoreErr("scan related supplier", err)
		}
		otherID, err := domain.NewCompanyId(otherCompanyID)
		if err != nil {
			return nil, wrapStoreErr("scan related supplier", err)
		}
		pairs = append(pairs, pair{partnerHash: partnerHash, otherKey: otherKey})
		others[otherKey] = otherID
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("iterate related suppliers", err)
	}

	var out []repository.RelatedSupplierContracts
	for _, p := range pairs {
		contracts, otherID, err := s.contractsForSupplierKey(ctx, p.otherKey)
		if err != nil {
			return nil, err
		}
		out = append(out, repository.RelatedSupplierContracts{
			PartnerHash:     p.partnerHash,
			OtherSupplierID: otherID,
			OtherContracts:  contracts,
		})
	}
	return out, nil
}

// GraphTwoHops implements repository.GraphRepository: a bounded BFS over the
// bipartite supplier/partner graph. Level 0 is the seed
// supplier; level 1 adds its partners and every other supplier those
// partners belong to; level 2 repeats one more hop. Deduplication is on
// node identity; traversal stops once maxNodes distinct nodes have been
// emitted, and truncated is true exactly when more candidates existed.
func (s *Store) GraphTwoHops(ctx context.Context, id domain.CompanyId, maxNodes int) ([]repository.GraphNode, []repository.GraphEdge, bool, error) {
	seedKey, err := s.supplierKeyFor(ctx, id)
	if err != nil {
		return nil, nil, false, err
	}

	kept := make(map[string]repository.GraphNode)
	keptOrder := []string{}
	truncated := false

	addNode := func(node repository.GraphNode) bool {
		if _, ok := kept[node.ID]; ok {
			return true
		}
		if len(kept) >= maxNodes {
			truncated = true
			return false
		}
		kept[node.ID] = node
		keptOrder = append(keptOrder, node.ID)
		return true
	}

	companyLabel, err := s.supplierLabel(ctx, seedKey)
	if err != nil {
		return nil, nil, false, err
	}
	addNode(repository.GraphNode{ID: "company:" + id.String(), Kind: repository.GraphNodeCompany, Label: companyLabel})

	type edgeCandidate struct{ from, to string }
	var edgeCandidates []edgeCandidate

	frontier := []int64{seedKey}
	for hop := 0; hop < 2 && len(frontier) > 0; hop++ {
		var nextFrontier []int64
		for _, supplierKey := range frontier {
			partners, err := s.partnerRowsForKey(ctx, supplierKey)
			if err != nil {
				return nil, nil, false, err
			}
			supplierCompanyID, err := s.companyIDForKey(ctx, supplierKey)
			if err != nil {
				return nil, nil, false, err
			}
			for _, pr := range partners {
				partnerNodeID := "person:" + pr.hash
				edgeCandidates = append(edgeCandidates, edgeCandidate{from: partnerNodeID, to: "company:" + supplierCompanyID.String()})
				if !addNode(repository.GraphNode{ID: partnerNodeID, Kind: repository.GraphNodePerson, Label: pr.name}) {
					continue
				}
				otherSuppliers, err := s.otherSuppliersForPartner(ctx, pr.key, supplierKey)
				if err != nil {
					return nil, nil, false, err
				}
				for _, other := range otherSuppliers {
					edgeCandidates = append(edgeCandidates, edgeCandidate{from: partnerNodeID, to: "company:" + other.id.String()})
					if addNode(repository.GraphNode{ID: "company:" + other.id.String(), Kind: repository.GraphNodeCompany, Label: other.name}) {
						nextFrontier = append(nextFrontier, other.key)
					}
				}
			}
		}
		frontier = nextFrontier
	}

	var edges []repository.GraphEdge
	for _, e := range edgeCandidates {
		_, fromOK := kept[e.from]
		_, toOK := kept[e.to]
		if fromOK && toOK {
			edges = append(edges, repository.GraphEdge{From: e.from, To: e.to, Kind: "owns-share-of"})
		}
	}

	nodes := make([]repository.GraphNode, 0, len(keptOrder))
	for _, id := range keptOrder {
		nodes = append(nodes, kept[id])
	}
	return nodes, edges, truncated, nil
}

type partnerRow struct {
	key  int64
	hash string
	name string
}

func (s *Store) partnerRowsForKey(ctx context.Context, supplierKey int64) ([]partnerRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.partner_key, p.person_hash, p.name
		FROM dim_partner p
		JOIN bridge_supplier_partner b ON b.partner_key = p.partner_key
		WHERE b.supplier_key = ?`, supplierKey)
	if err != nil {
		return nil, wrapStoreErr("query graph partners", err)
	}
	defer rows.Close()
	var out []partnerRow
	for rows.Next() {
		var pr partnerRow
		if err := rows.Scan(&pr.key, &pr.hash, &pr.name); err != nil {
			return nil, wrapStoreErr("scan graph partner", err)
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

type supplierRow struct {
	key  int64
	id   domain.CompanyId
	name string
}

func (s *Store) otherSuppliersForPartner(ctx context.Context, partnerKey, excludeSupplierKey int64) ([]supplierRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.supplier_key, d.company_id, d.legal_name
		FROM bridge_supplier_partner b
		JOIN dim_supplier d ON d.supplier_key = b.supplier_key
		WHERE b.partner_key = ? AND b.supplier_key != ?`, partnerKey, excludeSupplierKey)
	if err != nil {
		return nil, wrapStoreErr("query partner suppliers", err)
	}
	defer rows.Close()
	var out []supplierRow
	for rows.Next() {
		var key int64
		var companyID, name string
		if err := rows.Scan(&key, &companyID, &name); err != nil {
			return nil, wrapStoreErr("scan partner supplier", err)
		}
		id, err := domain.NewCompanyId(companyID)
		if err != nil {
			return nil, wrapStoreErr("scan partner supplier", err)
		}
		out = append(out, supplierRow{key: key, id: id, name: name})
	}
	return out, rows.Err()
}

func (s *Store) supplierLabel(ctx context.Context, key int64) (string, error) {
	var name string
	if err := s.db.QueryRowContext(ctx, `SELECT legal_name FROM dim_supplier WHERE supplier_key = ?`, key).Scan(&name); err != nil {
		return "", wrapStoreErr("resolve supplier label", err)
	}
	return name, nil
}

func (s *Store) companyIDForKey(ctx context.Context, key int64) (domain.CompanyId, error) {
	var companyID string
	if err := s.db.QueryRowContext(ctx, `SELECT company_id FROM dim_supplier WHERE supplier_key = ?`, key).Scan(&companyID); err != nil {
		return domain.CompanyId{}, wrapStoreErr("resolve supplier id", err)
	}
	return domain.NewCompanyId(companyID)
}
