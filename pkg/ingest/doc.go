// Package ingest loads domain schemas, entity seeds, and declarative
// constraints from YAML files into the engines.
//
// # File Formats
//
// A domain schema file carries one domain:
//
//	domain:
//	  name: itsm
//	  label: IT Service Management
//	  entity_types:
//	    - name: Incident
//	      properties:
//	        - name: severity
//	          type: enum
//	          enum_values: [sev1, sev2, sev3]
//	      relationships:
//	        - name: affects_service
//	          target_type: Service
//	          cardinality: many_to_one
//	          inverse_name: affected_by_incidents
//
// An entity seed file carries a list of entities:
//
//	entities:
//	  - id: itsm:Incident:INC001
//	    domain: itsm
//	    type: Incident
//	    properties:
//	      severity: sev1
//	    relationships:
//	      affects_service: [itsm:Service:SVC001]
//
// A constraint file carries a list of declarative constraints:
//
//	constraints:
//	  - id: change-freeze
//	    name: Change Freeze Window
//	    domain: itsm
//	    relevant_actions: [deploy]
//	    severity: block
//	    status: promoted
//	    rule:
//	      conditions:
//	        - field: change_freeze_active
//	          operator: eq
//	          value: true
//
// # Loading
//
// The Loader reads single files or recursive directories, guarding file
// size and UTF-8 validity, and returns typed LoadError/ParseError values.
//
// # Hot Reload
//
// The FileWatcher (fsnotify) watches loaded paths and invokes a reload
// callback after a debounce interval, so schema and rule-pack edits take
// effect without a restart.
package ingest
