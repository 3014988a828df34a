package rooms

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
}

func NewRedisRepo(rdb *redis.Client) Repo {
	return &redisRepo{rdb: rdb}
}

// Key layout:
//
//	hash lobby:queue           -> playerID => QueuedPlayer JSON
//	kv   lobby:queued:{id}     -> "1", TTL to reap abandoned entries
//	hash lobby:rooms           -> roomID => RoomInfo JSON
const (
	queueKey = "lobby:queue"
	roomsKey = "lobby:rooms"
)

func queuedKey(playerID string) string {
	return fmt.Sprintf("lobby:queued:%s", playerID)
}

func (r *redisRepo) Enqueue(ctx context.Context, player QueuedPlayer, ttlSeconds int) error {
	raw, err := json.Marshal(player)
	if err != nil {
		return err
	}
	p := r.rdb.Pipeline()
	p.HSet(ctx, queueKey, player.ID, raw)
	p.Set(ctx, queuedKey(player.ID), "1", time.Duration(ttlSeconds)*time.Second)
	_, err = p.Exec(ctx)
	return err
}

func (r *redisRepo) PopN(ctx context.Context, n int) ([]QueuedPlayer, error) {
	// HKEYS + HDEL in one script keeps the pop atomic across nodes.
	script := `
        local fields = redis.call("HKEYS", KEYS[1])
        if #fields == 0 then
            return {}
        end
        local out = {}
        local n = tonumber(ARGV[1])
        for i = 1, #fields do
            if i > n then break end
            local f = fields[i]
            out[#out+1] = f
            out[#out+1] = redis.call("HGET", KEYS[1], f)
            redis.call("HDEL", KEYS[1], f)
        end
        return out
    `
	res, err := r.rdb.Eval(ctx, script, []string{queueKey}, n).Result()
	if err != nil {
		return nil, err
	}
	flat, ok := res.([]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected eval result %T", res)
	}
	out := make([]QueuedPlayer, 0, len(flat)/2)
	p := r.rdb.Pipeline()
	for i := 0; i+1 < len(flat); i += 2 {
		id, _ := flat[i].(string)
		raw, _ := flat[i+1].(string)
		var qp QueuedPlayer
		if err := json.Unmarshal([]byte(raw), &qp); err != nil {
			continue
		}
		out = append(out, qp)
		p.Del(ctx, queuedKey(id))
	}
	_, _ = p.Exec(ctx)
	return out, nil
}

func (r *redisRepo) Count(ctx context.Context) (int64, error) {
	return r.rdb.HLen(ctx, queueKey).Result()
}

func (r *redisRepo) Remove(ctx context.Context, playerID string) error {
	p := r.rdb.Pipeline()
	p.HDel(ctx, queueKey, playerID)
	p.Del(ctx, queuedKey(playerID))
	_, err := p.Exec(ctx)
	return err
}

func (r *redisRepo) SaveRoom(ctx context.Context, info RoomInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return r.rdb.HSet(ctx, roomsKey, info.ID, raw).Err()
}

func (r *redisRepo) RemoveRoom(ctx context.Context, roomID string) error {
	return r.rdb.HDel(ctx, roomsKey, roomID).Err()
}

func (r *redisRepo) ListRooms(ctx context.Context) ([]RoomInfo, error) {
	entries, err := r.rdb.HGetAll(ctx, roomsKey).Result()
	if err != nil {
		return nil, err
	}
	out := make([]RoomInfo, 0, len(entries))
	for _, raw := range entries {
		var info RoomInfo
		if err := json.Unmarshal([]byte(raw), &info); err != nil {
			continue
		}
		out = append(out, info)
	}
	return out, nil
}
