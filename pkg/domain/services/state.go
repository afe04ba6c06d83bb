package services

// simulationState carries the mutable loop state from one period to the
// next: on-hand stock, the FIFO in-transit queue, and the currently active
// safety-stock target. No state lives outside this struct, so a single
// period step can be exercised in isolation.
type simulationState struct {
	onHand            float64
	inTransit         []float64
	safetyStockTarget float64
}

func newSimulationState(initialInventory float64, leadTime int, safetyStockTarget float64) *simulationState {
	return &simulationState{
		onHand:            initialInventory,
		inTransit:         make([]float64, leadTime),
		safetyStockTarget: safetyStockTarget,
	}
}

// receiveArrival pops the oldest in-transit order into on-hand stock and
// returns the arrived quantity. With zero lead time the queue can be empty
// at the start of a period; nothing arrives then.
func (st *simulationState) receiveArrival() float64 {
	if len(st.inTransit) == 0 {
		return 0
	}
	arriving := st.inTransit[0]
	st.inTransit = st.inTransit[1:]
	st.onHand += arriving
	return arriving
}

// inventoryPosition is on-hand stock plus everything still in transit.
func (st *simulationState) inventoryPosition() float64 {
	position := st.onHand
	for _, qty := range st.inTransit {
		position += qty
	}
	return position
}

// placeOrder raises the inventory position to futureDemand plus the active
// safety-stock target and queues the order at the back of the in-transit
// queue. Returns the order quantity, which is zero when the position
// already covers the target.
func (st *simulationState) placeOrder(futureDemand float64) float64 {
	orderUpToLevel := futureDemand + st.safetyStockTarget
	qty := orderUpToLevel - st.inventoryPosition()
	if qty < 0 {
		qty = 0
	}
	st.inTransit = append(st.inTransit, qty)
	return qty
}

// pushPlaceholder queues a zero order on non-review periods so the queue
// length stays in step with the lead time.
func (st *simulationState) pushPlaceholder() {
	st.inTransit = append(st.inTransit, 0)
}

// fulfill consumes demand from on-hand stock. Demand beyond available
// stock is lost, not backordered; returns true on stockout.
func (st *simulationState) fulfill(demand float64) bool {
	if demand <= st.onHand {
		st.onHand -= demand
		return false
	}
	st.onHand = 0
	return true
}
