package service

import (
	"net/http"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
)

type JSON = map[string]interface{}

func errorMessage(resp *apitest.Response) interface{} {
	return resp.BodyJsonMap()["error"].(map[string]interface{})["message"]
}

// Acceptance walks the whole car API. apiRequest must point to an empty
// collection.
func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Random car on empty collection", func(a *biff.A) {
		resp := apiRequest("GET", "/cars/random_car").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		biff.AssertEqual(errorMessage(resp), "no cars available")
	})

	a.Alternative("Create car", func(a *biff.A) {
		resp := apiRequest("POST", "/cars").
			WithBodyJson(JSON{
				"name":         "Model X",
				"manufacturer": "Acme",
				"top_speed":    "210mph",
				"colour":       "Red",
			}).Do()
		Save(resp, "Create car", `
			Top speed is normalized to "<number> mph". Ids are assigned by the
			server.
		`)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"message": "Car added successfully",
			"car": JSON{
				"id":           1,
				"name":         "Model X",
				"manufacturer": "Acme",
				"top_speed":    "210 mph",
				"colour":       "Red",
			},
		})

		a.Alternative("Get car", func(a *biff.A) {
			resp := apiRequest("GET", "/cars/1").Do()
			Save(resp, "Get car", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.BodyJsonMap()["name"], "Model X")
		})

		a.Alternative("Get car in km/h", func(a *biff.A) {
			resp := apiRequest("GET", "/cars/1?unit=kmh").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.BodyJsonMap()["top_speed"], "338 km/h")
		})

		a.Alternative("Get missing car", func(a *biff.A) {
			resp := apiRequest("GET", "/cars/99").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			biff.AssertEqual(errorMessage(resp), "car not found")
		})

		a.Alternative("Get car with bad id", func(a *biff.A) {
			resp := apiRequest("GET", "/cars/abc").Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Create duplicate", func(a *biff.A) {
			resp := apiRequest("POST", "/cars").
				WithBodyJson(JSON{
					"name":         "model x",
					"manufacturer": "ACME",
					"top_speed":    200,
					"colour":       "blue",
				}).Do()
			Save(resp, "Create car - duplicate", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			biff.AssertEqual(errorMessage(resp), "car already exists")
		})

		a.Alternative("Create with missing fields", func(a *biff.A) {
			resp := apiRequest("POST", "/cars").
				WithBodyJson(JSON{
					"name": "Beetle",
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			biff.AssertEqual(errorMessage(resp), "Missing required field(s): manufacturer, top_speed, colour")
		})

		a.Alternative("Create with invalid top speed", func(a *biff.A) {
			resp := apiRequest("POST", "/cars").
				WithBodyJson(JSON{
					"name":         "Beetle",
					"manufacturer": "VW",
					"top_speed":    "fast",
					"colour":       "yellow",
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			biff.AssertEqual(errorMessage(resp), "top_speed must be a number followed by 'mph', e.g. '210 mph'")
		})

		a.Alternative("Create with malformed body", func(a *biff.A) {
			resp := apiRequest("POST", "/cars").
				WithBodyString(`{"name": `).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		})

		a.Alternative("Update colour", func(a *biff.A) {
			resp := apiRequest("PUT", "/cars/1").
				WithBodyJson(JSON{
					"colour": "black",
				}).Do()
			Save(resp, "Update car", `
				Only the fields sent are changed.
			`)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"message": "Car updated successfully",
				"car": JSON{
					"id":           1,
					"name":         "Model X",
					"manufacturer": "Acme",
					"top_speed":    "210 mph",
					"colour":       "black",
				},
			})

			a.Alternative("Read updated car", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/1").Do()
				biff.AssertEqual(resp.BodyJsonMap()["colour"], "black")
			})
		})

		a.Alternative("Patch top speed", func(a *biff.A) {
			resp := apiRequest("PATCH", "/cars/1").
				WithBodyJson(JSON{
					"top_speed": 220,
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJsonMap()["car"].(map[string]interface{})["top_speed"], "220 mph")
		})

		a.Alternative("Update with invalid top speed", func(a *biff.A) {
			resp := apiRequest("PUT", "/cars/1").
				WithBodyJson(JSON{
					"top_speed": "very fast",
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)

			a.Alternative("Car is unchanged", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/1").Do()
				biff.AssertEqual(resp.BodyJsonMap()["top_speed"], "210 mph")
			})
		})

		a.Alternative("Update with negative top speed", func(a *biff.A) {
			resp := apiRequest("PATCH", "/cars/1").
				WithBodyJson(JSON{
					"top_speed": -5,
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			biff.AssertEqual(errorMessage(resp), "top_speed must not be negative")

			a.Alternative("Car is unchanged", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/1").Do()
				biff.AssertEqual(resp.BodyJsonMap()["top_speed"], "210 mph")
			})
		})

		a.Alternative("Update with null name", func(a *biff.A) {
			resp := apiRequest("PATCH", "/cars/1").
				WithBodyString(`{"name": null}`).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			biff.AssertEqual(errorMessage(resp), "name must not be empty")
		})

		a.Alternative("Stored top speed is accepted back", func(a *biff.A) {
			resp := apiRequest("PATCH", "/cars/1").
				WithBodyJson(JSON{
					"top_speed": "210 mph",
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqual(resp.BodyJsonMap()["car"].(map[string]interface{})["top_speed"], "210 mph")
		})

		a.Alternative("Update missing car", func(a *biff.A) {
			resp := apiRequest("PUT", "/cars/99").
				WithBodyJson(JSON{
					"colour": "black",
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})

		a.Alternative("Delete car", func(a *biff.A) {
			resp := apiRequest("DELETE", "/cars/1").Do()
			Save(resp, "Delete car", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"message": "Car deleted successfully",
			})

			a.Alternative("Get deleted car", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/1").Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

			a.Alternative("Delete again", func(a *biff.A) {
				resp := apiRequest("DELETE", "/cars/1").Do()
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})
		})

		a.Alternative("Create second car", func(a *biff.A) {
			resp := apiRequest("POST", "/cars").
				WithBodyJson(JSON{
					"name":         "Roadster",
					"manufacturer": "Zoom",
					"top_speed":    180,
					"colour":       "blue",
				}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(resp.BodyJsonMap()["car"].(map[string]interface{})["id"], 2)

			a.Alternative("List cars", func(a *biff.A) {
				resp := apiRequest("GET", "/cars").Do()
				Save(resp, "List cars", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), []JSON{
					{"id": 1, "name": "Model X", "manufacturer": "Acme", "top_speed": "210 mph", "colour": "Red"},
					{"id": 2, "name": "Roadster", "manufacturer": "Zoom", "top_speed": "180 mph", "colour": "blue"},
				})
			})

			a.Alternative("List cars in km/h", func(a *biff.A) {
				resp := apiRequest("GET", "/cars?unit=kmh").Do()
				Save(resp, "List cars - km/h", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), []JSON{
					{"id": 1, "name": "Model X", "manufacturer": "Acme", "top_speed": "338 km/h", "colour": "Red"},
					{"id": 2, "name": "Roadster", "manufacturer": "Zoom", "top_speed": "290 km/h", "colour": "blue"},
				})

				a.Alternative("Stored speed is unchanged", func(a *biff.A) {
					resp := apiRequest("GET", "/cars/1").Do()
					biff.AssertEqual(resp.BodyJsonMap()["top_speed"], "210 mph")
				})
			})

			a.Alternative("List cars with bad unit", func(a *biff.A) {
				resp := apiRequest("GET", "/cars?unit=knots").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
				biff.AssertEqual(errorMessage(resp), "bad unit 'knots', must be [km/h|kmh|mph]")
			})

			a.Alternative("Random car", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/random_car").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertNotNil(resp.BodyJsonMap()["id"])
			})

			a.Alternative("Filter by colours - partial", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/by-colour?colours=red,green").Do()
				Save(resp, "Filter by colours - partial", `
					Some colours matched: the cars found are returned together with
					the colours that did not match.
				`)

				biff.AssertEqual(resp.StatusCode, http.StatusPartialContent)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"cars": []JSON{
						{"id": 1, "name": "Model X", "manufacturer": "Acme", "top_speed": "210 mph", "colour": "Red"},
					},
					"message":   "No cars found in the colours: green",
					"unmatched": []string{"green"},
				})
			})

			a.Alternative("Filter by colours - none", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/by-colour?colours=green").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				biff.AssertEqual(errorMessage(resp), "No cars found in the colours: green")
			})

			a.Alternative("Filter by colours - all", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/by-colour?colours=RED,blue").Do()
				Save(resp, "Filter by colours", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(len(resp.BodyJson().([]interface{})), 2)
			})

			a.Alternative("Filter by colours - missing parameter", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/by-colour").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
				biff.AssertEqual(errorMessage(resp), "Please provide one or more colours in the query")
			})

			a.Alternative("Filter by manufacturers - partial", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/by-manufacturer?manufacturers=acme,%20Nope").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusPartialContent)
				biff.AssertEqual(resp.BodyJsonMap()["message"], "Some manufacturers not found: nope")
			})

			a.Alternative("Filter by manufacturers - in km/h", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/by-manufacturer?manufacturers=zoom&unit=kmh").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), []JSON{
					{"id": 2, "name": "Roadster", "manufacturer": "Zoom", "top_speed": "290 km/h", "colour": "blue"},
				})
			})

			a.Alternative("Filter by ids - partial", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/by-ids?ids=2,9").Do()
				Save(resp, "Filter by ids - partial", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusPartialContent)
				biff.AssertEqualJson(resp.BodyJsonMap()["unmatched"], []string{"9"})
				biff.AssertEqual(resp.BodyJsonMap()["message"], "No car found for ID(s): 9")
			})

			a.Alternative("Filter by ids - none", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/by-ids?ids=8,9").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

			a.Alternative("Filter by ids - not integers", func(a *biff.A) {
				resp := apiRequest("GET", "/cars/by-ids?ids=1,x").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})
		})
	})
}
