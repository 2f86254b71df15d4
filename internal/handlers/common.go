// common.go
//
// Shared request parsing helpers for the KPA form data handlers
//
// This file is part of kpa-formsdb.
// kpa-formsdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// kpa-formsdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with kpa-formsdb.
// If not, see <https://www.gnu.org/licenses/>.

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/trudransh/kpa-formsdb/internal/middleware"
	"github.com/trudransh/kpa-formsdb/internal/models"
)

// defaultPageLimit caps list responses when the client sends no limit.
const defaultPageLimit = 10

// parsePagination extracts skip and limit query parameters. Negative or
// unparsable values fall back to the defaults.
func parsePagination(c *fiber.Ctx) (skip, limit int) {
	skip = c.QueryInt("skip", 0)
	if skip < 0 {
		skip = 0
	}
	limit = c.QueryInt("limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	return skip, limit
}

// parseID parses a numeric path parameter.
func parseID(c *fiber.Ctx, name string) (uint64, error) {
	return strconv.ParseUint(c.Params(name), 10, 64)
}

// currentUser returns the authenticated caller set by the auth middleware,
// or nil on routes that do not require authentication.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(middleware.LocalsUserKey).(*models.User)
	return user
}

// currentUserID returns the authenticated caller's id, nil when anonymous.
func currentUserID(c *fiber.Ctx) *uint64 {
	user := currentUser(c)
	if user == nil {
		return nil
	}
	id := user.ID
	return &id
}
