package collection

// Collection is the full set of cars as read from storage.
type Collection []*Car

// NextID returns max(id)+1, or 1 for an empty collection. It is computed from
// current data every time, so deleting the max-id record frees its id again.
func (c Collection) NextID() int {
	max := 0
	for _, car := range c {
		if car.ID > max {
			max = car.ID
		}
	}
	return max + 1
}

func (c Collection) FindByID(id int) *Car {
	for _, car := range c {
		if car.ID == id {
			return car
		}
	}
	return nil
}

func (c Collection) indexOf(id int) int {
	for i, car := range c {
		if car.ID == id {
			return i
		}
	}
	return -1
}

// RemoveByID removes the car in place and reports whether it existed.
func (c *Collection) RemoveByID(id int) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	*c = append((*c)[:i], (*c)[i+1:]...)
	return true
}

// Replace swaps the car with the same id. Returns false if there is none.
func (c Collection) Replace(car *Car) bool {
	i := c.indexOf(car.ID)
	if i < 0 {
		return false
	}
	c[i] = car
	return true
}

// Insert assigns the next id to car and appends it.
func (c *Collection) Insert(car *Car) *Car {
	car.ID = c.NextID()
	*c = append(*c, car)
	return car
}

// Random picks one car using intN (same contract as rand.IntN). Returns nil
// when the collection is empty.
func (c Collection) Random(intN func(n int) int) *Car {
	if len(c) == 0 {
		return nil
	}
	return c[intN(len(c))]
}
