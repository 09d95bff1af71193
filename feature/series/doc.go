// Package series manages book series. Books reference a series weakly: deleting
// a series detaches its books instead of deleting them.
//
//   - GET    /series      : list the owner's series
//   - POST   /series      : create a series
//   - PUT    /series/:id  : rename or change the planned count
//   - DELETE /series/:id  : delete and detach books
package series
