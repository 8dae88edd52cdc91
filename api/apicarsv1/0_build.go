package apicarsv1

import (
	"github.com/fulldump/box"

	"github.com/fulldump/blurcars/service"
)

// BuildV1Cars mounts the car routes below parent and returns the /cars
// resource. Literal routes are declared before /cars/{id} so they win the
// match.
func BuildV1Cars(parent *box.R, s service.Servicer) *box.R {

	cars := parent.Resource("/cars").
		WithActions(
			box.Get(listCars).WithName("listCars"),
			box.Post(createCar).WithName("createCar"),
		)

	parent.Resource("/cars/random_car").
		WithActions(
			box.Get(randomCar).WithName("randomCar"),
		)

	parent.Resource("/cars/by-manufacturer").
		WithActions(
			box.Get(findByManufacturer).WithName("findByManufacturer"),
		)

	parent.Resource("/cars/by-colour").
		WithActions(
			box.Get(findByColour).WithName("findByColour"),
		)

	parent.Resource("/cars/by-ids").
		WithActions(
			box.Get(findByIDs).WithName("findByIDs"),
		)

	parent.Resource("/cars/{id}").
		WithActions(
			box.Get(getCar).WithName("getCar"),
			box.Put(updateCar).WithName("updateCar"),
			box.Patch(updateCar).WithName("patchCar"),
			box.Delete(deleteCar).WithName("deleteCar"),
		)

	return cars
}
