/*
Package resilience provides the circuit breaker guarding remote collaborators.

The engine talks to two external services it does not control: the billing
service (entitlement refresh) and the ad-network bridge. Both sit behind
user-visible flows, so when one goes down the breaker fails calls fast
instead of letting taps queue against a dead endpoint.

# Usage

	settings := resilience.RemoteDefaults()
	settings.OnStateChange = func(name string, from, to resilience.State) {
		logger.Info("breaker transition", zap.String("breaker", name))
	}
	breaker := resilience.New("entitlement-refresh", settings)

	result, err := breaker.Execute(func() (interface{}, error) {
		return client.Call()
	})

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failed probe]
	                                           |
	                                           v
	                                         Open
*/
package resilience
