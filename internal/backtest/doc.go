/*
Backtest implements the bar-replay strategy executor.

# Module
  - event queue: fill attempts and cancel requests waiting for the next bar
  - matching engine: resolves every queued event against the arriving bar, then clears the queue
  - position ledger: weighted-average cost, realized profit and fees per instrument
  - risk gate: clamps submissions to the position cap, counting pending orders

# Per bar
 1. record the bar's last price for its instrument
 2. resolve queued events, notifying cancels and executions in queue order
 3. deliver the bar to the strategy, which may submit or cancel for the next bar

# One-shot resolution
Every event gets exactly one resolution attempt, on the bar after it was
queued. Whatever is still pending afterwards stays pending for the rest of
the run and keeps its quantity reserved against the position cap.

# Produce
  - order log, trade log and final positions
*/
package backtest
