package export

import (
	"context"
	"fmt"

	"go-content-export/internal/model"
	"go-content-export/internal/store"
)

// totalCountsQuery counts every authored item per user, split by
// container kind and by challenge render type. Left joins so a user
// active in only one container kind still gets a 0 for the other.
const totalCountsQuery = `
SELECT
	u.id,
	u.username,
	COALESCE(u.email, ''),
	COALESCE(u.googleEmail, ''),
	COALESCE(p.pool_items, 0),
	COALESCE(c.challenge_items, 0),
	COALESCE(c.assessment_items, 0),
	COALESCE(c.video_items, 0),
	COALESCE(c.live_items, 0),
	COALESCE(p.pool_items, 0) + COALESCE(c.challenge_items, 0) AS num_items
FROM user u
LEFT JOIN (
	SELECT p.ownerId AS ownerId, COUNT(*) AS pool_items
	FROM pool p
	JOIN item i ON i.poolId = p.id
	GROUP BY p.ownerId
) p ON u.id = p.ownerId
LEFT JOIN (
	SELECT
		ownerId,
		SUM(CASE WHEN renderType = 'ASSESSMENT' THEN n ELSE 0 END) AS assessment_items,
		SUM(CASE WHEN renderType = 'VIDEO' THEN n ELSE 0 END) AS video_items,
		SUM(CASE WHEN renderType = 'LIVE' THEN n ELSE 0 END) AS live_items,
		SUM(n) AS challenge_items
	FROM (
		SELECT ch.ownerId AS ownerId, ch.renderType AS renderType, COUNT(*) AS n
		FROM challenge ch
		JOIN challenge_item ci ON ci.challengeId = ch.id
		GROUP BY ch.ownerId, ch.renderType
	)
	GROUP BY ownerId
) c ON u.id = c.ownerId
WHERE COALESCE(p.pool_items, 0) + COALESCE(c.challenge_items, 0) > ?
ORDER BY num_items DESC
`

// recentCountsQuery is the same join shape with both item sets
// pre-filtered to the recent-activity cutoff. The >= 1 filter and
// ascending order are kept from the source query; only the per-user
// value is consumed downstream.
const recentCountsQuery = `
SELECT
	u.id,
	COALESCE(p.pool_items, 0) + COALESCE(c.challenge_items, 0) AS num_items
FROM user u
LEFT JOIN (
	SELECT p.ownerId AS ownerId, COUNT(*) AS pool_items
	FROM pool p
	JOIN (SELECT * FROM item WHERE createdAt > ?) i ON i.poolId = p.id
	GROUP BY p.ownerId
) p ON u.id = p.ownerId
LEFT JOIN (
	SELECT ch.ownerId AS ownerId, COUNT(*) AS challenge_items
	FROM challenge ch
	JOIN (SELECT * FROM challenge_item WHERE createdAt > ?) ci ON ci.challengeId = ch.id
	GROUP BY ch.ownerId
) c ON u.id = c.ownerId
WHERE COALESCE(p.pool_items, 0) + COALESCE(c.challenge_items, 0) >= 1
ORDER BY num_items ASC
`

// RankUsers returns every user whose total authored item count strictly
// exceeds spec.MinItemCount, descending by total, with recent-activity
// counts merged in by user id. The ranked list is authoritative: a user
// with recent activity but below the threshold is dropped.
func RankUsers(ctx context.Context, spec model.ExportJobSpec) ([]model.User, error) {
	users, err := queryTotalCounts(ctx, spec.MinItemCount)
	if err != nil {
		return nil, fmt.Errorf("total counts query: %w", err)
	}

	recent, err := queryRecentCounts(ctx, spec.RecentCutoff)
	if err != nil {
		return nil, fmt.Errorf("recent counts query: %w", err)
	}

	// Join recent counts onto the ranked set. Absent means zero.
	for i := range users {
		users[i].RecentItemCount = recent[users[i].ID]
	}

	return users, nil
}

func queryTotalCounts(ctx context.Context, minItemCount int) ([]model.User, error) {
	rows, err := store.DB().QueryContext(ctx, totalCountsQuery, minItemCount)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.GoogleEmail,
			&u.ItemCounts.PoolItems,
			&u.ItemCounts.ChallengeItems,
			&u.ItemCounts.AssessmentItems,
			&u.ItemCounts.VideoItems,
			&u.ItemCounts.LiveItems,
			&u.ItemCounts.All,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func queryRecentCounts(ctx context.Context, cutoff string) (map[string]int, error) {
	rows, err := store.DB().QueryContext(ctx, recentCountsQuery, cutoff, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recent := make(map[string]int)
	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		recent[id] = count
	}
	return recent, rows.Err()
}
