package export

import (
	"context"
	"fmt"
	"strings"

	"go-content-export/internal/model"
	"go-content-export/internal/store"
)

// tagJoin aggregates normalized tag names per item revision. SQLite's
// group_concat stands in for the analytical engine's list().
const tagJoin = `
LEFT JOIN (
	SELECT itm.itemRevisionId AS revId, group_concat(it.normalizedName) AS tags
	FROM item_tag_mapping itm
	JOIN item_tag it ON itm.itemTagId = it.id
	GROUP BY itm.itemRevisionId
) irt ON irt.revId = ir.id`

// challengeItemsQuery reaches items through the challenge membership
// table; poolItemsQuery through pool ownership and the draft revision
// link. Both project into the same Item shape, with the enclosing
// container's title as the context label. ORDER BY keeps fixtures
// reproducible; nothing downstream depends on the order.
const (
	challengeItemsQuery = `
SELECT
	c.title AS context,
	ir.id,
	ir.title,
	ir.itemDoc,
	COALESCE(ir.explanationDoc, ''),
	%s
FROM user u
JOIN challenge c ON u.id = c.ownerId
JOIN challenge_item ci ON c.id = ci.challengeId
JOIN item_revision ir ON ci.itemRevisionId = ir.id
%s
WHERE u.id = ?
ORDER BY ir.id`

	poolItemsQuery = `
SELECT
	p.title AS context,
	ir.id,
	ir.title,
	ir.itemDoc,
	COALESCE(ir.explanationDoc, ''),
	%s
FROM user u
JOIN pool p ON u.id = p.ownerId
JOIN item ON p.id = item.poolId
JOIN item_revision ir ON ir.draftItemId = item.id
%s
WHERE u.id = ?
ORDER BY ir.id`
)

// CollectItems retrieves every item a user authored in either container
// kind, normalized into one record shape. An unknown user id yields an
// empty slice: it is indistinguishable from a user who authored
// nothing. Both paths are concatenated without deduplication.
func CollectItems(ctx context.Context, userID string, includeTags bool) ([]model.Item, error) {
	challengeItems, err := collectPath(ctx, challengeItemsQuery, userID, includeTags)
	if err != nil {
		return nil, fmt.Errorf("challenge items for user %s: %w", userID, err)
	}

	poolItems, err := collectPath(ctx, poolItemsQuery, userID, includeTags)
	if err != nil {
		return nil, fmt.Errorf("pool items for user %s: %w", userID, err)
	}

	return append(challengeItems, poolItems...), nil
}

func collectPath(ctx context.Context, queryTemplate, userID string, includeTags bool) ([]model.Item, error) {
	// Tag enrichment is a toggle on the shared query, not a second
	// code path.
	query := fmt.Sprintf(queryTemplate, "''", "")
	if includeTags {
		query = fmt.Sprintf(queryTemplate, "COALESCE(irt.tags, '')", tagJoin)
	}

	rows, err := store.DB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var it model.Item
		var tags string
		if err := rows.Scan(&it.Context, &it.ItemID, &it.ItemTitle, &it.ItemDoc, &it.ExplanationDoc, &tags); err != nil {
			return nil, err
		}
		it.UserID = userID
		if tags != "" {
			it.Tags = strings.Split(tags, ",")
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
