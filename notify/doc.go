// Copyright (c) 2026 Societly.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package notify delivers poll lifecycle events to external consumers.

# Dispatcher

The voting service holds a Dispatcher and fires events when a poll is created
or transitions to closed:

	notifier.PollCreated(notify.PollEvent{PollID: id, ...})

Dispatch is fire-and-forget by contract: implementations never block the
caller and a delivery failure never fails or rolls back the operation that
triggered it.

# Implementations

RedisDispatcher publishes JSON payloads to redis pub/sub channels
(societly.poll.created, societly.poll.closed):

	dispatcher, err := notify.NewRedisDispatcher(ctx, cfg.RedisAddr)

Noop discards everything; it is used when REDIS_ADDR is not configured and
throughout the test suite.
*/
package notify
