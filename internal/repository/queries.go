package repository

// Statements shared by the stores. Every value is bound as a parameter.
const (
	queryNextCategory = `
		SELECT coalesce(max(id) + 1, 0), coalesce(max(category_order) + 1, 0)
		  FROM categories`

	insertCategory = `
		INSERT INTO categories (id, name, category_order)
		     VALUES (?, ?, ?)`

	updateCategoryName = `UPDATE categories SET name = ? WHERE id = ?`

	unsortCategoryActivities = `UPDATE activities SET category_id = ? WHERE category_id = ?`

	deleteCategory = `DELETE FROM categories WHERE id = ?`

	queryNextActivity = `
		SELECT coalesce(max(id) + 1, 0), coalesce(max(activity_order) + 1, 0)
		  FROM activities`

	insertActivity = `
		INSERT INTO activities (id, name, category_id, activity_order)
		     VALUES (?, ?, ?, ?)`

	updateActivity = `
		UPDATE activities
		   SET name = ?,
		       category_id = ?
		 WHERE id = ?`

	queryNextOrderInCategory = `
		SELECT coalesce(max(activity_order) + 1, 0)
		  FROM activities
		 WHERE category_id = ?`

	updateActivityCategory = `
		UPDATE activities
		   SET category_id = ?, activity_order = ?
		 WHERE id = ?`

	queryActivityOrder = `SELECT activity_order FROM activities WHERE id = ?`

	updateActivityOrder = `UPDATE activities SET activity_order = ? WHERE id = ?`

	shiftActivitiesAfter = `
		UPDATE activities
		   SET activity_order = activity_order + 1
		 WHERE activity_order > ?`

	shiftActivitiesFrom = `
		UPDATE activities
		   SET activity_order = activity_order + 1
		 WHERE activity_order >= ?`

	markActivityDeleted = `UPDATE activities SET deleted = 1 WHERE id = ?`

	deleteActivity = `DELETE FROM activities WHERE id = ?`

	queryActivityFactCount = `SELECT count(*) FROM facts WHERE activity_id = ?`

	queryActivityByName = `
		SELECT id
		  FROM activities
		 WHERE lower(name) = lower(?)
	  ORDER BY coalesce(deleted, 0), id DESC
		 LIMIT 1`

	querySortedActivities = `
		SELECT a.*
		  FROM activities a
	 LEFT JOIN categories b ON coalesce(b.id, -1) = a.category_id
		 WHERE a.category_id > -1
		   AND coalesce(a.deleted, 0) = 0
	  ORDER BY b.category_order, a.activity_order`

	selectFactEntries = `
		SELECT a.id AS id,
		       a.activity_id AS activity_id,
		       a.start_time AS start_time,
		       a.end_time AS end_time,
		       b.name AS activity_name,
		       c.id AS category_id,
		       coalesce(c.name, ?) AS category_name
		  FROM facts a
	 LEFT JOIN activities b ON a.activity_id = b.id
	 LEFT JOIN categories c ON b.category_id = c.id`

	queryFactByID = selectFactEntries + `
		 WHERE a.id = ?`

	queryLastFact = selectFactEntries + `
	  ORDER BY a.id DESC
		 LIMIT 1`

	queryFactsInRange = selectFactEntries + `
		 WHERE a.start_time >= ?
		   AND a.start_time < ?
	  ORDER BY a.start_time`

	touchFact = `UPDATE facts SET end_time = ? WHERE id = ?`

	deleteFact = `DELETE FROM facts WHERE id = ?`
)
